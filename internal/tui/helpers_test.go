package tui

import (
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/deck"
)

func stackedForDeal() *deck.Deck {
	return deck.NewStacked(nil, card.MustParseCards(
		"3o 1b 1p 1v 2b 2p 2v 4b 4p 4v 5b 5p 5v 6b 6p 6v 7b 7p 7v 8b 8p"))
}
