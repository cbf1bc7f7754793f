// Package draft хранит незавершенные ревью пользователей в памяти.
//
// Хранилище шардировано по идентичности пользователя: операции над разными
// пользователями идут полностью параллельно, операции над одним пользователем
// сериализуются мьютексом шарда. Блокировки держатся только на время доступа
// к map, никогда поверх сетевых вызовов.
package draft

import (
	"hash/fnv"
	"sync"

	"review-bot-service/internal/domain"
)

const shardCount = 32

type shard struct {
	mu     sync.Mutex
	drafts map[string]*domain.ReviewDraft
}

// Store — потокобезопасное хранилище черновиков ревью.
type Store struct {
	shards [shardCount]*shard
}

// NewStore создает новый экземпляр Store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = &shard{drafts: make(map[string]*domain.ReviewDraft)}
	}
	return s
}

func (s *Store) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%shardCount]
}

// Start начинает новый черновик с указанным комментарием.
// Существующий черновик перезаписывается целиком: интерфейс чата позволяет
// начать ревью заново, прежний прогресс не сливается.
func (s *Store) Start(userID, comment string) error {
	if comment == "" {
		return domain.ErrEmptyComment
	}
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.drafts[userID] = &domain.ReviewDraft{Comment: comment}
	return nil
}

// SetTicket устанавливает тикет активного черновика. Возвращает false,
// если черновика нет: поздние и повторные колбэки от платформы чата —
// ожидаемое явление, не ошибка.
func (s *Store) SetTicket(userID, ticketKey string) bool {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	d, ok := sh.drafts[userID]
	if !ok {
		return false
	}
	d.TicketKey = ticketKey
	return true
}

// SetVerdict устанавливает вердикт активного черновика. Пока тикет
// не выбран, операция — преднамеренный no-op: пользователь сначала
// должен выбрать тикет.
func (s *Store) SetVerdict(userID string, verdict domain.Verdict) bool {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	d, ok := sh.drafts[userID]
	if !ok || d.TicketKey == "" {
		return false
	}
	d.Verdict = verdict
	return true
}

// Complete атомарно изымает готовый черновик. Ровно один конкурентный
// вызов получает кортеж; повторный вызов по уже изъятому черновику
// возвращает ok=false.
func (s *Store) Complete(userID string) (domain.Submission, bool) {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	d, ok := sh.drafts[userID]
	if !ok || !d.Complete() {
		return domain.Submission{}, false
	}
	delete(sh.drafts, userID)
	return domain.Submission{
		Comment:   d.Comment,
		TicketKey: d.TicketKey,
		Verdict:   d.Verdict,
	}, true
}

// Cancel безусловно удаляет черновик пользователя.
func (s *Store) Cancel(userID string) {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.drafts, userID)
}

// Restore возвращает изъятый черновик обратно после неудачной отправки
// в трекер, чтобы пользователь мог повторить терминальное действие.
// Новый черновик, начатый тем временем, не перезаписывается.
func (s *Store) Restore(userID string, sub domain.Submission) bool {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, exists := sh.drafts[userID]; exists {
		return false
	}
	sh.drafts[userID] = &domain.ReviewDraft{
		Comment:   sub.Comment,
		TicketKey: sub.TicketKey,
		Verdict:   sub.Verdict,
	}
	return true
}

// Get возвращает копию текущего черновика пользователя.
func (s *Store) Get(userID string) (domain.ReviewDraft, bool) {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	d, ok := sh.drafts[userID]
	if !ok {
		return domain.ReviewDraft{}, false
	}
	return *d, true
}
