package app

import (
	"context"
	"errors"

	"lexidice/internal/domain"
	"lexidice/internal/oracle"
)

// launchBotsLocked starts one negotiation goroutine per bot player with a
// snapshot of the round's tiles and modifier. Bots never block human
// timers; they re-enter session state only through SubmitWord.
// Caller must hold mu.
func (s *GameSession) launchBotsLocked() {
	round := s.game.RoundNumber
	for _, p := range s.game.PlayersInJoinOrder() {
		if !p.IsBot {
			continue
		}
		pool := domain.TilePool{
			Community: append([]domain.Tile(nil), s.game.CommunityDice...),
			Private:   append([]domain.Tile(nil), p.Dice...),
		}
		go s.runBot(p.ID, round, pool, s.game.Modifier)
	}
}

// runBot negotiates a word for one bot: it drives the proposal oracle
// through bounded retries, feeding back prior rejections, and validates
// every candidate through the scoring engine exactly as a human
// submission would be. Exhausting the bound leaves the bot with no
// submission for the round.
func (s *GameSession) runBot(botID string, round int, pool domain.TilePool, mod domain.Modifier) {
	if s.oracles.Proposer == nil {
		// No oracle configured: fall back to the local best-word search.
		best := domain.BestWord(pool, mod, s.dict)
		if !best.Found {
			return
		}
		s.submitBotWord(botID, best.Word, best.Refs)
		return
	}

	community, private := oracle.PoolInfo(pool)
	req := oracle.ProposalRequest{
		Community: community,
		Private:   private,
		Modifier:  mod.Describe(),
	}

	for attempt := 0; attempt < s.cfg.Game.BotRetryLimit; attempt++ {
		if s.roundOver(round) {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Oracle.Timeout)
		proposal, err := s.oracles.Proposer.ProposeWord(ctx, req)
		cancel()
		if err != nil {
			// Malformed output counts against the bound but yields no
			// feedback beyond "unparseable".
			req.Failures = append(req.Failures, oracle.ProposalFailure{Reason: "unparseable"})
			continue
		}

		res := domain.ScoreSubmission(pool, proposal.Refs, proposal.Word, mod, s.dict)
		if !res.Valid {
			req.Failures = append(req.Failures, oracle.ProposalFailure{
				Word:   proposal.Word,
				Reason: res.Reason.Message(),
			})
			continue
		}

		s.submitBotWord(botID, proposal.Word, proposal.Refs)
		return
	}

	s.logger.Debug("bot exhausted retries without a valid word", "botID", botID, "round", round)
}

// submitBotWord pushes an accepted candidate through the same submission
// path humans use, including timer halving and the all-submitted check.
func (s *GameSession) submitBotWord(botID, word string, refs []domain.TileRef) {
	err := s.SubmitWord(botID, word, refs)
	if err != nil && !errors.Is(err, domain.ErrRoundOver) {
		s.logger.Debug("bot submission rejected", "botID", botID, "error", err)
	}
}
