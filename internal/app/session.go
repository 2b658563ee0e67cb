package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"lexidice/internal/config"
	"lexidice/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// GameSession wraps one session's game with concurrency control, timers,
// and client management. Every mutation of game state happens under mu,
// so submissions, reveal-by-timeout, and reveal-by-all-submitted are
// serialized.
type GameSession struct {
	game      *domain.Game
	deck      *domain.Deck
	mu        sync.RWMutex
	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex

	cfg     *config.Config
	dict    domain.Dictionary
	oracles Oracles
	logger  *slog.Logger

	timers *timerRegistry

	// deleteSelf removes this session from the hub. It closes over the
	// session code only, so firing after deletion is a safe no-op.
	deleteSelf func()

	// Countdown state, guarded by mu.
	remaining     int
	halved        bool
	countdownStop chan struct{}

	// Event channel for broadcasting
	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewGameSession creates a new game session
func NewGameSession(game *domain.Game, cfg *config.Config, dict domain.Dictionary, oracles Oracles, logger *slog.Logger, deleteSelf func()) *GameSession {
	session := &GameSession{
		game:       game,
		deck:       domain.NewDeck(),
		clients:    make(map[string]ClientConnection),
		cfg:        cfg,
		dict:       dict,
		oracles:    oracles,
		logger:     logger.With("code", game.Code),
		timers:     newTimerRegistry(),
		deleteSelf: deleteSelf,
		events:     make(chan *domain.GameEvent, 100),
		done:       make(chan struct{}),
	}

	// Start event broadcaster
	go session.eventLoop()

	return session
}

// Code returns the session code
func (s *GameSession) Code() string {
	return s.game.Code
}

// CreatedAt returns when the session was created
func (s *GameSession) CreatedAt() time.Time {
	return s.game.CreatedAt
}

// PlayerCount returns the number of players
func (s *GameSession) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.game.Players)
}

// Status returns the current session status
func (s *GameSession) Status() domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Status
}

// CanJoin checks if a new player can join the session
func (s *GameSession) CanJoin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Status == domain.StatusWaiting && len(s.game.Players) < domain.MaxPlayers
}

// HasPlayer reports whether a player ID belongs to this session, which
// distinguishes a returning player from a new join.
func (s *GameSession) HasPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.game.GetPlayer(playerID)
	return err == nil
}

// RegisterClient registers a client connection for a player
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *GameSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// AddPlayer adds a human player to the session
func (s *GameSession) AddPlayer(playerID, name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.AddPlayer(playerID, name)
	if err != nil {
		return nil, err
	}

	// Someone is here again; the empty-session clock stops.
	s.timers.Cancel(timerDeletion)

	s.queueEvent(domain.NewEvent(domain.EventPlayerJoined, s.game.Code, s.game.LobbyState()))
	return player, nil
}

// AddBot adds an automated player (host only, while waiting)
func (s *GameSession) AddBot(playerID, name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return nil, domain.ErrNotHost
	}
	if name == "" {
		name = "Bot " + uuid.NewString()[:4]
	}

	bot, err := s.game.AddBot(uuid.NewString(), name)
	if err != nil {
		return nil, err
	}

	s.queueEvent(domain.NewEvent(domain.EventPlayerJoined, s.game.Code, s.game.LobbyState()))
	return bot, nil
}

// RemoveBot removes a bot (host only, while waiting)
func (s *GameSession) RemoveBot(playerID, botID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}
	if s.game.Status != domain.StatusWaiting {
		return domain.ErrInvalidStatus
	}
	bot, err := s.game.GetPlayer(botID)
	if err != nil {
		return err
	}
	if !bot.IsBot {
		return domain.ErrNotABot
	}

	if err := s.game.RemovePlayer(botID); err != nil {
		return err
	}
	s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.game.Code, s.game.LobbyState()))
	return nil
}

// UpdateSettings replaces game settings (host only, while waiting)
func (s *GameSession) UpdateSettings(playerID string, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}
	if err := s.game.UpdateSettings(settings); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventLobbyUpdate, s.game.Code, s.game.LobbyState()))
	return nil
}

// DisconnectPlayer marks a player as disconnected without removing them:
// dice, submissions, and points are preserved until the removal grace
// period elapses.
func (s *GameSession) DisconnectPlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.GetPlayer(playerID)
	if err != nil || player.IsBot {
		return
	}

	player.Disconnect()
	s.queueEvent(domain.NewEvent(domain.EventPlayerDisconnected, s.game.Code, s.game.LobbyState()))

	s.timers.Schedule(timerRemovalPrefix+playerID, s.cfg.Game.RemovalGrace, func() {
		s.expireRemoval(playerID)
	})

	if player.IsHost && s.game.Status == domain.StatusWaiting {
		s.timers.Schedule(timerHostMigration, s.cfg.Game.HostMigrationGrace, s.expireHostMigration)
	}

	if s.game.ConnectedCount() == 0 {
		s.timers.Schedule(timerDeletion, s.cfg.Game.DeletionGrace, s.deleteSelf)
	}
}

// ReconnectPlayer marks a player as reconnected, cancelling any pending
// removal and the empty-session deletion clock.
func (s *GameSession) ReconnectPlayer(playerID string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	player.Reconnect()
	s.timers.Cancel(timerRemovalPrefix + playerID)
	s.timers.Cancel(timerDeletion)
	if player.IsHost {
		s.timers.Cancel(timerHostMigration)
	}

	s.queueEvent(domain.NewEvent(domain.EventPlayerReconnected, s.game.Code, s.game.LobbyState()))
	return player, nil
}

// expireRemoval permanently removes a player who never reconnected.
func (s *GameSession) expireRemoval(playerID string) {
	s.mu.Lock()

	player, err := s.game.GetPlayer(playerID)
	if err != nil || player.IsConnected() {
		s.mu.Unlock()
		return
	}

	hadHost := player.IsHost
	if err := s.game.RemovePlayer(playerID); err != nil {
		s.mu.Unlock()
		return
	}
	s.logger.Info("disconnected player removed", "playerID", playerID)

	empty := len(s.game.Players) == 0
	if !empty {
		s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.game.Code, s.game.LobbyState()))
		if hadHost {
			if h := s.game.Host(); h != nil {
				s.queueEvent(domain.NewEvent(domain.EventHostChanged, s.game.Code, &domain.HostChangedPayload{HostID: h.ID, Name: h.Name}))
			}
		}
		// A removal can complete the round if everyone else already
		// submitted.
		if s.game.Status == domain.StatusPlaying && !s.game.Revealed && s.game.AllSubmitted() {
			s.revealLocked()
		}
	}
	s.mu.Unlock()

	if empty {
		s.deleteSelf()
	}
}

// expireHostMigration transfers host status away from a host who stayed
// disconnected through the grace period while the session was waiting.
func (s *GameSession) expireHostMigration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Status != domain.StatusWaiting {
		return
	}
	host := s.game.Host()
	if host == nil || host.IsConnected() {
		return
	}

	next, ok := s.game.MigrateHost()
	if !ok {
		// No other connected player; the empty-session timer will
		// eventually collect this session.
		return
	}

	s.logger.Info("host migrated", "from", host.ID, "to", next.ID)
	s.queueEvent(domain.NewEvent(domain.EventHostChanged, s.game.Code, &domain.HostChangedPayload{HostID: next.ID, Name: next.Name}))
	s.queueEvent(domain.NewEvent(domain.EventLobbyUpdate, s.game.Code, s.game.LobbyState()))
}

// StartGame starts the game (host only)
func (s *GameSession) StartGame(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}
	if err := s.game.Start(); err != nil {
		return err
	}

	delay := s.cfg.Game.StartDelay
	s.queueEvent(domain.NewEvent(domain.EventGameStarting, s.game.Code, &domain.GameStartingPayload{
		StartsInSeconds: int(delay.Seconds()),
		RoundCount:      s.game.Settings.RoundCount,
	}))

	s.timers.Schedule(timerStartRound, delay, s.startRound)
	return nil
}

// NextRound advances to the next round (host only, post-reveal)
func (s *GameSession) NextRound(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}
	if s.game.Status != domain.StatusPlaying {
		return domain.ErrInvalidStatus
	}
	if !s.game.Revealed {
		return domain.ErrRoundInProgress
	}
	if s.game.IsLastRound() {
		return domain.ErrNoMoreRounds
	}

	return s.startRoundLocked()
}

// startRound is the timer callback form of startRoundLocked.
func (s *GameSession) startRound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startRoundLocked(); err != nil {
		s.logger.Error("failed to start round", "error", err)
	}
}

// startRoundLocked deals a fresh round and restarts the countdown.
// Caller must hold mu.
func (s *GameSession) startRoundLocked() error {
	if err := s.game.StartRound(s.deck); err != nil {
		return err
	}

	// Private dice go to each player individually.
	for _, p := range s.game.PlayersInJoinOrder() {
		s.queueEvent(domain.NewPlayerEvent(domain.EventPrivateDice, s.game.Code, p.ID, &domain.PrivateDicePayload{
			RoundNumber: s.game.RoundNumber,
			Dice:        p.Dice,
		}))
	}

	s.queueEvent(domain.NewEvent(domain.EventRoundStarted, s.game.Code, &domain.RoundStartedPayload{
		RoundNumber:     s.game.RoundNumber,
		TotalRounds:     s.game.Settings.RoundCount,
		CommunityDice:   s.game.CommunityDice,
		Modifier:        s.game.Modifier,
		ModifierText:    s.game.Modifier.Describe(),
		DurationSeconds: s.game.Settings.RoundDurationSeconds,
	}))

	// Cancel-and-replace the countdown before starting a new one.
	if s.countdownStop != nil {
		close(s.countdownStop)
	}
	s.remaining = s.game.Settings.RoundDurationSeconds
	s.halved = false
	s.countdownStop = make(chan struct{})
	go s.runCountdown(s.countdownStop)

	s.launchBotsLocked()
	return nil
}

// runCountdown drives the one-second-resolution round timer.
func (s *GameSession) runCountdown(stop chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-s.done:
			return
		case <-ticker.C:
			if !s.tick() {
				return
			}
		}
	}
}

// tick decrements the countdown, broadcasting the remaining time or
// revealing the round at zero. Returns false when the countdown is over.
func (s *GameSession) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Status != domain.StatusPlaying || s.game.Revealed {
		return false
	}

	s.remaining--
	if s.remaining <= 0 {
		s.revealLocked()
		return false
	}

	s.queueEvent(domain.NewEvent(domain.EventTimerTick, s.game.Code, &domain.TimerTickPayload{
		RemainingSeconds: s.remaining,
	}))
	return true
}

// SubmitWord validates, scores, and records a word for the current round.
// The same path serves humans and bots, so submission acceptance order is
// first-come and the halving event is attributed to whichever submission
// lands first.
func (s *GameSession) SubmitWord(playerID, word string, refs []domain.TileRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, first, err := s.game.RecordSubmission(playerID, word, refs, s.dict)
	if err != nil {
		return err
	}

	// First submission of the round halves the remaining time, floored,
	// with a floor of 10 seconds. At most once per round; resubmissions
	// never re-trigger it.
	if first && !s.halved && s.remaining > 10 {
		s.remaining = max(10, s.remaining/2)
		s.halved = true
		s.queueEvent(domain.NewEvent(domain.EventTimerHalved, s.game.Code, &domain.TimerHalvedPayload{
			RemainingSeconds: s.remaining,
			TriggeredBy:      playerID,
		}))
	}

	s.queueEvent(domain.NewPlayerEvent(domain.EventSubmissionUpdate, s.game.Code, playerID, &domain.SubmissionResultPayload{
		Word:      sub.Word,
		IsValid:   sub.IsValid,
		Reason:    sub.Reason,
		Message:   sub.Reason.Message(),
		Score:     sub.Score,
		Breakdown: sub.Breakdown,
	}))

	submitted := lo.Keys(s.game.Submissions)
	s.queueEvent(domain.NewEvent(domain.EventSubmissionUpdate, s.game.Code, &domain.SubmissionUpdatePayload{
		SubmittedIDs: submitted,
		Submitted:    len(submitted),
		TotalPlayers: len(s.game.Players),
	}))

	if s.game.AllSubmitted() {
		s.revealLocked()
	}
	return nil
}

// revealLocked ends the round: stops the timer, ranks submissions, awards
// points, and broadcasts results. Idempotent. Caller must hold mu.
func (s *GameSession) revealLocked() {
	if s.game.Revealed {
		return
	}

	if s.countdownStop != nil {
		close(s.countdownStop)
		s.countdownStop = nil
	}

	summary := s.game.Reveal()

	scoreboard := make([]domain.PlayerInfo, 0, len(s.game.Players))
	for _, p := range s.game.PlayersInJoinOrder() {
		scoreboard = append(scoreboard, p.ToInfo())
	}

	s.queueEvent(domain.NewEvent(domain.EventRoundRevealed, s.game.Code, &domain.RoundRevealedPayload{
		Summary:     summary,
		Scoreboard:  scoreboard,
		IsLastRound: s.game.IsLastRound(),
	}))

	pools := make(map[string]domain.TilePool, len(s.game.Players))
	for _, p := range s.game.PlayersInJoinOrder() {
		if p.IsBot {
			continue
		}
		pools[p.ID] = domain.TilePool{
			Community: append([]domain.Tile(nil), s.game.CommunityDice...),
			Private:   append([]domain.Tile(nil), p.Dice...),
		}
	}
	go s.publishBestWords(summary.Number, pools, s.game.Modifier)

	validWords := make([]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		if r.IsValid {
			validWords = append(validWords, r.Word)
		}
	}
	go s.publishFlavor(summary.Number, validWords)
}

// publishBestWords sends each player the best word their own pool
// allowed, off the reveal path since the search is the expensive part.
func (s *GameSession) publishBestWords(roundNumber int, pools map[string]domain.TilePool, mod domain.Modifier) {
	for playerID, pool := range pools {
		best := domain.BestWord(pool, mod, s.dict)
		if !best.Found {
			continue
		}
		s.queueEvent(domain.NewPlayerEvent(domain.EventBestWord, s.game.Code, playerID, &domain.BestWordPayload{
			RoundNumber: roundNumber,
			Result:      best,
		}))
	}
}

// publishFlavor fetches post-reveal fun facts and illustrations. Both are
// optional features; every failure degrades to "unavailable" without
// touching round results.
func (s *GameSession) publishFlavor(roundNumber int, words []string) {
	if s.oracles.Flavor == nil || len(words) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Oracle.Timeout)
	defer cancel()

	fact, err := s.oracles.Flavor.FunFact(ctx, words)
	if err != nil {
		s.logger.Debug("fun fact unavailable", "error", err)
		return
	}
	s.queueEvent(domain.NewEvent(domain.EventFunFact, s.game.Code, &domain.FunFactPayload{
		RoundNumber: roundNumber,
		Text:        fact,
	}))

	if s.oracles.Illustrator == nil {
		return
	}
	imgCtx, imgCancel := context.WithTimeout(context.Background(), s.cfg.Oracle.Timeout)
	defer imgCancel()

	url, err := s.oracles.Illustrator.Illustrate(imgCtx, words, fact)
	if err != nil {
		s.logger.Debug("illustration unavailable", "error", err)
		return
	}
	s.queueEvent(domain.NewEvent(domain.EventIllustration, s.game.Code, &domain.IllustrationPayload{
		RoundNumber: roundNumber,
		URL:         url,
	}))
}

// FinalResults moves the session to finished and broadcasts final
// standings (host only, after the last round's reveal).
func (s *GameSession) FinalResults(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}
	if err := s.game.Finish(); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventFinalStandings, s.game.Code, &domain.FinalStandingsPayload{
		Standings: s.game.FinalStandings(),
		History:   s.game.RoundHistory,
	}))
	return nil
}

// ResetSession performs a full reset back to the lobby ("end early" or
// "play again", host only).
func (s *GameSession) ResetSession(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.IsHost(playerID) {
		return domain.ErrNotHost
	}

	if s.countdownStop != nil {
		close(s.countdownStop)
		s.countdownStop = nil
	}
	s.timers.Cancel(timerStartRound)
	s.game.ResetForLobby()

	s.queueEvent(domain.NewEvent(domain.EventSessionReset, s.game.Code, s.game.LobbyState()))
	return nil
}

// roundOver reports whether the given round has already been revealed or
// superseded, used by bot retry loops to self-terminate.
func (s *GameSession) roundOver(roundNumber int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Status != domain.StatusPlaying ||
		s.game.RoundNumber != roundNumber ||
		s.game.Revealed
}

// StateFor returns the current session state for a (re)connecting player
func (s *GameSession) StateFor(playerID string) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := map[string]interface{}{
		"status":      s.game.Status,
		"lobby":       s.game.LobbyState(),
		"settings":    s.game.Settings,
		"roundNumber": s.game.RoundNumber,
		"totalRounds": s.game.Settings.RoundCount,
	}

	if s.game.Status == domain.StatusPlaying && s.game.RoundNumber > 0 {
		state["communityDice"] = s.game.CommunityDice
		state["modifier"] = s.game.Modifier
		state["modifierText"] = s.game.Modifier.Describe()
		state["revealed"] = s.game.Revealed
		if !s.game.Revealed {
			state["remainingSeconds"] = s.remaining
		}
		if player, err := s.game.GetPlayer(playerID); err == nil {
			state["dice"] = player.Dice
		}
		if sub, ok := s.game.Submissions[playerID]; ok {
			state["submission"] = sub
		}
		if s.game.Revealed && len(s.game.RoundHistory) > 0 {
			state["lastRound"] = s.game.RoundHistory[len(s.game.RoundHistory)-1]
		}
	}

	if s.game.Status == domain.StatusFinished {
		state["standings"] = s.game.FinalStandings()
		state["history"] = s.game.RoundHistory
	}

	return state
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to appropriate clients
func (s *GameSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	// If player-specific, send only to that player
	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	// Broadcast to all clients
	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *GameSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	s.mu.Lock()
	if s.countdownStop != nil {
		close(s.countdownStop)
		s.countdownStop = nil
	}
	s.mu.Unlock()

	s.timers.CancelAll()

	// Close all client connections
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
