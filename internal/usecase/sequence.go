package usecase

import "fmt"

// SequenceNumber labels the post at index of a listing with total entries.
// Listings are newest first, so the last entry gets 0001.
func SequenceNumber(total, index int) string {
	return fmt.Sprintf("%04d", total-index)
}
