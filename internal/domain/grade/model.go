package grade

import "time"

// Grade - итог одного сеанса опроса по теме
type Grade struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Topic      string    `json:"topic"`
	Asked      int       `json:"asked"`
	Correct    int       `json:"correct"`
	Added      int       `json:"added"`
	Mastered   bool      `json:"mastered"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Score возвращает долю верных ответов за сеанс
func (g Grade) Score() float64 {
	if g.Asked <= 0 {
		return 0
	}
	return float64(g.Correct) / float64(g.Asked)
}

// Summary - накопленная статистика по теме
type Summary struct {
	Topic       string    `json:"topic"`
	Sessions    int       `json:"sessions"`
	Asked       int       `json:"asked"`
	Correct     int       `json:"correct"`
	LastSession time.Time `json:"last_session"`
}

func (s Summary) Score() float64 {
	if s.Asked <= 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Asked)
}
