package contact

import (
	"errors"

	"github.com/ncruces/zenity"
)

// ZenityPrompter shows native dialogs.
type ZenityPrompter struct{}

func (ZenityPrompter) Entry(title, prompt, initial string) (string, error) {
	v, err := zenity.Entry(prompt, zenity.Title(title), zenity.EntryText(initial))
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrCanceled
	}
	return v, err
}

func (ZenityPrompter) Info(title, text string) error {
	err := zenity.Info(text, zenity.Title(title), zenity.InfoIcon)
	if errors.Is(err, zenity.ErrCanceled) {
		return ErrCanceled
	}
	return err
}
