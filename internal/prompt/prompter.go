// Package prompt collects interactive confirmations before destructive moves.
package prompt

import (
	"bufio"
	"io"
	"strings"
)

const (
	responseYesShortConstant = "y"
	responseYesLongConstant  = "yes"
	responseAllShortConstant = "a"
	responseAllLongConstant  = "all"
)

// ConfirmationResult captures the outcome of a user confirmation prompt.
type ConfirmationResult struct {
	Confirmed  bool
	ApplyToAll bool
}

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets y/yes as a single confirmation and a/all as confirming every remaining item.
// Any other response, including end of input, declines.
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (ConfirmationResult, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return ConfirmationResult{}, writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return ConfirmationResult{}, readError
	}

	trimmedResponse := strings.TrimSpace(strings.ToLower(response))
	switch trimmedResponse {
	case responseYesShortConstant, responseYesLongConstant:
		return ConfirmationResult{Confirmed: true}, nil
	case responseAllShortConstant, responseAllLongConstant:
		return ConfirmationResult{Confirmed: true, ApplyToAll: true}, nil
	default:
		return ConfirmationResult{}, nil
	}
}
