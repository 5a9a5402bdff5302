package types

// CellStatus represents the terminal state of one (record, provider) cell
type CellStatus string

const (
	CellStatusPending      CellStatus = "pending"
	CellStatusNoToken      CellStatus = "no_token"
	CellStatusTokenExpired CellStatus = "token_expired"
	CellStatusSuccess      CellStatus = "success"
	CellStatusError        CellStatus = "error"

	// CellStatusNotAttempted is assigned to cells that were never processed
	// because the batch context was cancelled before reaching them.
	CellStatusNotAttempted CellStatus = "not_attempted"
)

// String returns the string representation of the status
func (s CellStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status closes the cell
func (s CellStatus) IsTerminal() bool {
	return s != CellStatusPending
}

// IsValid checks if the status is valid
func (s CellStatus) IsValid() bool {
	switch s {
	case CellStatusPending, CellStatusNoToken, CellStatusTokenExpired,
		CellStatusSuccess, CellStatusError, CellStatusNotAttempted:
		return true
	default:
		return false
	}
}
