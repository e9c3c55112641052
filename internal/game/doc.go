// Package game implements the Adná rule engine.
//
// The main type is Engine, which drives a four-seat round: it asks the
// active seat's Agent for a Decision, validates it against the discard top,
// applies it to the deck and the seat's hand, resolves action cards, checks
// for a win or a low-hand penalty and moves the turn pointer.
//
// # Basic Usage
//
//	d := deck.New(randutil.New(seed))
//	e, err := game.NewEngine(d, []game.Seat{
//		{Name: "A", Agent: human},
//		{Name: "B", Agent: bot.NewAggressive()},
//		{Name: "C", Agent: human2},
//		{Name: "D", Agent: bot.NewConservative()},
//	}, game.Options{Logger: logger})
//	result, err := e.Run()
//
// # Deterministic Testing
//
// Every shuffle comes from the *rand.Rand handed to the deck, and both
// automated policies are deterministic, so a game replays exactly from its
// seed and the human decisions. Scenario tests use deck.NewStacked to fix the
// order of the draw pile:
//
//	d := deck.NewStacked(nil, card.MustParseCards("Sb 3o 1b 2b ..."))
//
// # Architecture
//
// The engine delegates to small components:
//   - deck.Deck: draw and discard piles, reshuffle on exhaustion
//   - IsLegal: the stateless legality checker shared by engine and policies
//   - Agent: the single decision operation implemented by bots and humans
//   - EventBus: read-only notifications for display collaborators
//
// The engine is single-threaded. The only blocking call is the Agent's
// RequestDecision, and every mutation happens inside Step.
package game
