package service

import (
	"context"
	"errors"
	"time"

	"bookcase/internal/http-api/models"
	"bookcase/internal/http-api/repository"

	"gorm.io/gorm"
)

// SessionInput is the payload for logging one reading session.
type SessionInput struct {
	StartPage       int
	EndPage         int
	Date            *time.Time
	DurationMinutes *int
	Notes           *string
}

type LibraryService interface {
	AddBook(ctx context.Context, userID string, book *models.Book, initialStatus string) (*models.UserBook, error)
	UpdateStatus(ctx context.Context, userID string, userBookID int64, newStatus string, currentPage *int, notes *string) (*models.UserBook, error)
	UpdateProgress(ctx context.Context, userID string, userBookID int64, currentPage int) (*models.UserBook, error)
	ListBooks(ctx context.Context, userID, statusFilter string) ([]models.UserBook, error)
	LogSession(ctx context.Context, userID string, userBookID int64, input SessionInput) (*models.ReadingSession, error)
	ListSessions(ctx context.Context, userID string, userBookID int64) ([]models.ReadingSession, error)
}

type libraryService struct {
	tx           repository.TxRunner
	userBookRepo repository.UserBookRepository
	sessionRepo  repository.SessionRepository
	now          func() time.Time
}

func NewLibraryService(
	tx repository.TxRunner,
	userBookRepo repository.UserBookRepository,
	sessionRepo repository.SessionRepository,
) LibraryService {
	return &libraryService{
		tx:           tx,
		userBookRepo: userBookRepo,
		sessionRepo:  sessionRepo,
		now:          time.Now,
	}
}

// AddBook imports the book metadata if unseen (re-import overwrites it) and
// creates the caller's tracking record for it. The whole write path runs in
// one transaction: a rejected add leaves no trace, not even the metadata
// overwrite.
func (s *libraryService) AddBook(ctx context.Context, userID string, book *models.Book, initialStatus string) (*models.UserBook, error) {
	if initialStatus == "" {
		initialStatus = models.StatusTBR
	}
	if !models.ValidStatus(initialStatus) {
		return nil, ErrInvalidTransition
	}

	var userBook *models.UserBook
	err := s.tx.InTx(ctx, func(r repository.Repos) error {
		existing, err := r.Books.GetByOpenLibraryID(ctx, book.OpenLibraryID)
		switch {
		case err == nil:
			book.ID = existing.ID
			book.CreatedAt = existing.CreatedAt
			if err := r.Books.Update(ctx, book); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := r.Books.Create(ctx, book); err != nil {
				return err
			}
		default:
			return err
		}

		exists, err := r.UserBooks.Exists(ctx, userID, book.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateEntry
		}

		userBook = &models.UserBook{
			UserID: userID,
			BookID: book.ID,
			Status: initialStatus,
		}
		// A record created directly in a later status gets the same date side
		// effects a transition into that status would apply.
		s.applyTransition(userBook, initialStatus)
		return r.UserBooks.Create(ctx, userBook)
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrDuplicateEntry), errors.Is(err, gorm.ErrDuplicatedKey):
		// A concurrent add can slip past the existence check; the unique
		// index on (user_id, book_id) is the arbiter either way.
		return nil, ErrDuplicateEntry
	default:
		return nil, storeErr(err)
	}
	userBook.Book = book
	return userBook, nil
}

// UpdateStatus moves the record into newStatus. Every status can reach every
// other; DateStarted/DateFinished are only ever set, never cleared, so a
// re-read does not erase history.
func (s *libraryService) UpdateStatus(ctx context.Context, userID string, userBookID int64, newStatus string, currentPage *int, notes *string) (*models.UserBook, error) {
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidTransition
	}
	userBook, err := s.getOwned(ctx, userID, userBookID)
	if err != nil {
		return nil, err
	}

	s.applyTransition(userBook, newStatus)
	userBook.Status = newStatus
	if currentPage != nil {
		if newStatus != models.StatusReading {
			return nil, ErrInvalidTransition
		}
		if err := validatePage(*currentPage, userBook.Book); err != nil {
			return nil, err
		}
		userBook.CurrentPage = *currentPage
	}
	if notes != nil {
		userBook.Notes = notes
	}

	if err := s.userBookRepo.Save(ctx, userBook); err != nil {
		return nil, storeErr(err)
	}
	return userBook, nil
}

// UpdateProgress records the caller's current page; only a book being read
// has a meaningful position.
func (s *libraryService) UpdateProgress(ctx context.Context, userID string, userBookID int64, currentPage int) (*models.UserBook, error) {
	userBook, err := s.getOwned(ctx, userID, userBookID)
	if err != nil {
		return nil, err
	}
	if userBook.Status != models.StatusReading {
		return nil, ErrInvalidTransition
	}
	if err := validatePage(currentPage, userBook.Book); err != nil {
		return nil, err
	}
	userBook.CurrentPage = currentPage
	if err := s.userBookRepo.Save(ctx, userBook); err != nil {
		return nil, storeErr(err)
	}
	return userBook, nil
}

func (s *libraryService) ListBooks(ctx context.Context, userID, statusFilter string) ([]models.UserBook, error) {
	if statusFilter != "" && !models.ValidStatus(statusFilter) {
		return nil, ErrInvalidTransition
	}
	userBooks, err := s.userBookRepo.ListByUser(ctx, userID, statusFilter)
	if err != nil {
		return nil, storeErr(err)
	}
	return userBooks, nil
}

// LogSession records one sitting and, while the book is being read, advances
// the bookmark when the session ended further in.
func (s *libraryService) LogSession(ctx context.Context, userID string, userBookID int64, input SessionInput) (*models.ReadingSession, error) {
	userBook, err := s.getOwned(ctx, userID, userBookID)
	if err != nil {
		return nil, err
	}
	if input.StartPage < 0 || input.EndPage < input.StartPage {
		return nil, ErrInvalidPage
	}
	if err := validatePage(input.EndPage, userBook.Book); err != nil {
		return nil, err
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}
	session := &models.ReadingSession{
		UserID:          userID,
		BookID:          userBook.BookID,
		StartPage:       input.StartPage,
		EndPage:         input.EndPage,
		SessionDate:     date,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, storeErr(err)
	}

	if userBook.Status == models.StatusReading && input.EndPage > userBook.CurrentPage {
		userBook.CurrentPage = input.EndPage
		if err := s.userBookRepo.Save(ctx, userBook); err != nil {
			return nil, storeErr(err)
		}
	}
	return session, nil
}

func (s *libraryService) ListSessions(ctx context.Context, userID string, userBookID int64) ([]models.ReadingSession, error) {
	userBook, err := s.getOwned(ctx, userID, userBookID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByUserAndBook(ctx, userID, userBook.BookID)
	if err != nil {
		return nil, storeErr(err)
	}
	return sessions, nil
}

// getOwned loads a UserBook and enforces caller ownership.
func (s *libraryService) getOwned(ctx context.Context, userID string, userBookID int64) (*models.UserBook, error) {
	userBook, err := s.userBookRepo.GetByID(ctx, userBookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	if userBook.UserID != userID {
		return nil, ErrForbidden
	}
	return userBook, nil
}

// applyTransition sets the one-way date side effects of entering status.
func (s *libraryService) applyTransition(userBook *models.UserBook, status string) {
	now := s.now()
	switch status {
	case models.StatusReading:
		if userBook.DateStarted == nil {
			userBook.DateStarted = &now
		}
	case models.StatusFinished, models.StatusDNF:
		if userBook.DateFinished == nil {
			userBook.DateFinished = &now
		}
		// Finishing a book that was never marked as reading still implies it
		// was started.
		if userBook.DateStarted == nil {
			userBook.DateStarted = &now
		}
	}
}

func validatePage(page int, book *models.Book) error {
	if page < 0 {
		return ErrInvalidPage
	}
	if book != nil && book.Pages != nil && *book.Pages > 0 && page > *book.Pages {
		return ErrInvalidPage
	}
	return nil
}
