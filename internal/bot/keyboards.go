package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback tokens for the frequency keyboard. These are opaque wire values;
// changing them breaks keyboards in already-delivered messages.
const (
	callbackWithFrequency    = "with_frequency"
	callbackWithoutFrequency = "without_frequency"
)

// callbackLimitPrefix prefixes the limit keyboard tokens ("limit_50", ...).
const callbackLimitPrefix = "limit_"

// limitChoices are the selectable result-row limits, in keyboard order.
var limitChoices = []int{50, 100, 150}

// frequencyKeyboard builds the "with/without frequency" inline keyboard.
func frequencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 С частотностью", callbackWithFrequency),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Без частотности", callbackWithoutFrequency),
		),
	)
}

// limitKeyboard builds the result-limit inline keyboard.
func limitKeyboard() tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(limitChoices))
	for _, n := range limitChoices {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d слов", n),
			callbackLimitPrefix+strconv.Itoa(n),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
}

// parseLimitCallback extracts the limit from a limit-keyboard token.
// It accepts only the tokens the keyboard actually offers.
func parseLimitCallback(data string) (int, bool) {
	raw, ok := strings.CutPrefix(data, callbackLimitPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	for _, choice := range limitChoices {
		if n == choice {
			return n, true
		}
	}
	return 0, false
}
