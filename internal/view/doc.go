// Package view holds the state of the translator window and the operations
// the user can trigger on it: editing, translating, copying and clearing.
// It knows nothing about the GUI toolkit; the gui package renders State
// snapshots and forwards user events here.
package view
