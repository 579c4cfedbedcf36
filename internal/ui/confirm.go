// Package ui holds the interactive prompts.
package ui

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question on the terminal. Answering "n" (or
// aborting the prompt) returns false without an error.
func Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Default:   "y",
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
