package board

// BoardError is a custom error type for board-related errors
type BoardError string

// Error implements the error interface
func (e BoardError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrBoardNotFound    BoardError = "no board in this channel"
	ErrStaleBoard       BoardError = "board has been replaced"
	ErrNilInput         BoardError = "input cannot be nil"
	ErrNilConfig        BoardError = "config cannot be nil"
	ErrNilRepository    BoardError = "board repository cannot be nil"
	ErrNilClock         BoardError = "clock cannot be nil"
	ErrNilUUIDGenerator BoardError = "UUID generator cannot be nil"
)
