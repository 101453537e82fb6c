package storage

// Book is the best-score record of one game inside a Store.
// It satisfies host.BestScores.
type Book struct {
	store  *Store
	gameID string
}

// ForGame returns the best-score book for gameID.
func (s *Store) ForGame(gameID string) *Book {
	return &Book{store: s, gameID: gameID}
}

// Best returns the stored best score. Databases written before the
// best_scores table existed fall back to the highest session score.
func (b *Book) Best() (int, error) {
	best, err := b.store.BestScore(b.gameID)
	if err != nil {
		return 0, err
	}
	if best > 0 {
		return best, nil
	}
	return b.store.HighScore(b.gameID)
}

// SaveBest stores score as the new best.
func (b *Book) SaveBest(score int) error {
	return b.store.SetBestScore(b.gameID, score)
}
