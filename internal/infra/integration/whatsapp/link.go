package whatsapp

import (
	"strings"
	"unicode"
)

const (
	clickToChatBaseURL = "https://wa.me/"

	// FallbackNumber é usado quando nem as configurações do site nem o ambiente têm número.
	FallbackNumber = "+212123456789"
)

// ResolveNumber escolhe o número de destino: configurações do site primeiro,
// depois o número comercial do ambiente, por fim o FallbackNumber.
func ResolveNumber(settingsPhone, envNumber string) string {
	if settingsPhone != "" {
		return settingsPhone
	}
	if envNumber != "" {
		return envNumber
	}
	return FallbackNumber
}

// NormalizeNumber remove espaços, '+' e '-' do telefone.
func NormalizeNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r == '+' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
}

// ClickToChatURL monta https://wa.me/{number}?text={message}.
func ClickToChatURL(number, message string) string {
	return clickToChatBaseURL + NormalizeNumber(number) + "?text=" + EncodeURIComponent(message)
}

// EncodeURIComponent escapa todo byte exceto A-Z a-z 0-9 - _ . ! ~ * ' ( ).
// Espaço vira %20 e quebra de linha vira %0A.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
