// Package position implements display-order allocation for the notes
// of a deck: computing the next free position, planning assignments
// for notes that lack one, validating and planning full reorders,
// dense renumbering, and pairwise swaps. Planning is pure; applying a
// plan goes through the minimal NoteStore interface so any backing
// store can be used.
package position
