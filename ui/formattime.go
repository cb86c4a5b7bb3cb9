// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/wavetermdev/tsunamikit/util"
)

const (
	ErrCodeBadFormat = "ui:badformat"
	ErrCodeBadLocale = "ui:badlocale"
)

type Format string

const (
	FormatS     Format = "s"
	FormatSS    Format = "ss"
	FormatMMSS  Format = "mm ss"
	FormatClock Format = "m:s"
	FormatM     Format = "m"
	FormatMM    Format = "mm"
)

const DefaultFormat = FormatClock

var AllFormats = []Format{FormatS, FormatSS, FormatMMSS, FormatClock, FormatM, FormatMM}

type Locale string

const (
	LocaleEn        Locale = "en"
	LocaleRu        Locale = "ru"
	LocaleRuPassive Locale = "ru-passive"
)

const DefaultLocale = LocaleEn

var AllLocales = []Locale{LocaleEn, LocaleRu, LocaleRuPassive}

func ParseFormat(s string) (Format, error) {
	for _, f := range AllFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", util.Errorf(ErrCodeBadFormat, "invalid format %q (valid: %s)", s, joinQuoted(AllFormats))
}

func ParseLocale(s string) (Locale, error) {
	for _, l := range AllLocales {
		if string(l) == strings.ToLower(s) {
			return l, nil
		}
	}
	return "", util.Errorf(ErrCodeBadLocale, "invalid locale %q (valid: %s)", s, joinQuoted(AllLocales))
}

func joinQuoted[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for idx, v := range vals {
		parts[idx] = fmt.Sprintf("%q", string(v))
	}
	return strings.Join(parts, ", ")
}

// Pluralize returns the word ending for amount.  Russian endings only look at
// the last digit, so 11-14 get the same ending as 1-4.
func Pluralize(amount int, l Locale) string {
	switch l {
	case LocaleRu, LocaleRuPassive:
		switch amount % 10 {
		case 1:
			if l == LocaleRuPassive {
				return "у"
			}
			return "а"
		case 2, 3, 4:
			return "ы"
		default:
			return ""
		}
	default:
		if amount == 1 {
			return ""
		}
		return "s"
	}
}

func isRussian(l Locale) bool {
	return l == LocaleRu || l == LocaleRuPassive
}

// FormatTime renders a number of seconds.  Negative input is treated as 0,
// unknown formats render as FormatS and unknown locales as LocaleEn.
func FormatTime(seconds int, f Format, l Locale) string {
	if seconds < 0 {
		seconds = 0
	}
	fullMinutes := seconds / 60
	secondsLeft := seconds % 60
	ceilMinutes := (seconds + 59) / 60
	switch f {
	case FormatClock:
		return fmt.Sprintf("%02d:%02d", fullMinutes, secondsLeft)
	case FormatMMSS:
		var sb strings.Builder
		if isRussian(l) {
			if fullMinutes > 0 {
				// minutes always take the active ending
				fmt.Fprintf(&sb, "%d минут%s ", fullMinutes, Pluralize(fullMinutes, LocaleRu))
			}
			fmt.Fprintf(&sb, "%d секунд%s", secondsLeft, Pluralize(secondsLeft, l))
			return sb.String()
		}
		if fullMinutes > 0 {
			fmt.Fprintf(&sb, "%d minute%s ", fullMinutes, Pluralize(fullMinutes, LocaleEn))
		}
		fmt.Fprintf(&sb, "%d second%s", secondsLeft, Pluralize(secondsLeft, LocaleEn))
		return sb.String()
	case FormatSS:
		if isRussian(l) {
			return fmt.Sprintf("%d секунд%s", seconds, Pluralize(seconds, l))
		}
		return fmt.Sprintf("%d second%s", seconds, Pluralize(seconds, LocaleEn))
	case FormatMM:
		if isRussian(l) {
			return fmt.Sprintf("%d минут%s", ceilMinutes, Pluralize(ceilMinutes, l))
		}
		return fmt.Sprintf("%d minute%s", ceilMinutes, Pluralize(ceilMinutes, LocaleEn))
	case FormatM:
		return fmt.Sprintf("%d", ceilMinutes)
	default:
		return fmt.Sprintf("%d", seconds)
	}
}
