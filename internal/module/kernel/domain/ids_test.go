package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChargeID(t *testing.T) {
	id, err := NewChargeID("ch_Jr8LmvqT2hbO1z4e")
	require.NoError(t, err)
	assert.Equal(t, "ch_Jr8LmvqT2hbO1z4e", id.String())

	tests := []struct {
		name  string
		value string
	}{
		{"wrong prefix", "or_Jr8LmvqT2hbO1z4e"},
		{"no prefix", "Jr8LmvqT2hbO1z4e"},
		{"short suffix", "ch_abc"},
		{"symbols in suffix", "ch_abc$defghijk"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChargeID(tt.value)
			assert.Error(t, err)
		})
	}
}

func TestClassifyCardIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       CardIdentifierKind
	}{
		{"one-time token", "token_9WxYzAbCdEfGh123", CardIdentifierToken},
		{"saved card", "card_3RtUvWxYzAbCd456", CardIdentifierSavedCard},
		{"charge id is not a card", "ch_Jr8LmvqT2hbO1z4e", CardIdentifierInvalid},
		{"garbage", "not-a-card", CardIdentifierInvalid},
		{"token prefix with bad suffix", "token_!!", CardIdentifierInvalid},
		{"empty", "", CardIdentifierInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCardIdentifier(tt.identifier))
		})
	}
}

func TestClassifyCardIdentifierIsDeterministic(t *testing.T) {
	// The same identifier always lands on the same variant.
	for i := 0; i < 10; i++ {
		assert.Equal(t, CardIdentifierToken, ClassifyCardIdentifier("token_9WxYzAbCdEfGh123"))
	}
}
