package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"notevault/media"
	"notevault/model"
)

// ErrInvalidNote marks validation failures caught before any store or media
// work happens.
var ErrInvalidNote = errors.New("invalid note")

// NoteStore is what the service needs from persistence. An empty userID in
// the lookup methods means unscoped access.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error)
	GetNote(ctx context.Context, noteID, userID string) (*model.Note, error)
	UpdateNote(ctx context.Context, noteID, userID string, updates *model.Note, replaceImages bool) error
	DeleteNote(ctx context.Context, noteID, userID string) error
}

type NotesService struct {
	NotesRepo NoteStore
	Media     media.Store

	// OwnerScoped is true in the per-route auth deployment: every lookup is
	// filtered by the caller's identity and a claim is mandatory. The legacy
	// global-auth deployment runs unscoped, with no ownership filtering at
	// all; the two behaviors are never mixed.
	OwnerScoped bool
}

// owner returns the identity used for query scoping.
func (svc *NotesService) owner(userID string) string {
	if !svc.OwnerScoped {
		return ""
	}
	return userID
}

func (svc *NotesService) validateNote(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: note title is required", ErrInvalidNote)
	}
	if len(title) > 200 {
		return fmt.Errorf("%w: note title exceeds maximum length", ErrInvalidNote)
	}

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: note content is required", ErrInvalidNote)
	}
	if len(content) > 50000 {
		return fmt.Errorf("%w: note content exceeds maximum length", ErrInvalidNote)
	}

	return nil
}

// uploadAll pushes every file to the media store before anything touches the
// database. One failed upload fails the whole batch, so a note can never be
// persisted referencing an upload that did not complete.
func (svc *NotesService) uploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	uris := make([]string, 0, len(files))
	for _, file := range files {
		uri, err := svc.Media.Upload(ctx, file)
		if err != nil {
			return nil, err
		}
		uris = append(uris, uri)
	}
	return uris, nil
}

// CreateNote validates, uploads media, then persists. The stored owner is
// always the authenticated caller; any owner field a client smuggles into
// the request body is ignored because it never reaches this signature.
func (svc *NotesService) CreateNote(ctx context.Context, userID, title, content string, files []*multipart.FileHeader) (*model.Note, error) {
	if svc.OwnerScoped && userID == "" {
		return nil, fmt.Errorf("%w: authenticated user required", ErrInvalidNote)
	}

	if err := svc.validateNote(title, content); err != nil {
		return nil, err
	}

	images, err := svc.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note := &model.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Content:   content,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetUserNotes lists the caller's notes, newest first.
func (svc *NotesService) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return svc.NotesRepo.GetUserNotes(ctx, svc.owner(userID))
}

// GetNote fetches one note. A mismatched owner surfaces as not-found.
func (svc *NotesService) GetNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	return svc.NotesRepo.GetNote(ctx, noteID, svc.owner(userID))
}

// UpdateNote applies partial-update semantics: title and content are
// overwritten with the request values as-is (deliberately not re-validated,
// matching the behavior this service inherited), while images are replaced
// only when new files arrive. Media uploads happen after the ownership check
// and before the write.
func (svc *NotesService) UpdateNote(ctx context.Context, noteID, userID, title, content string, files []*multipart.FileHeader) (*model.Note, error) {
	existing, err := svc.NotesRepo.GetNote(ctx, noteID, svc.owner(userID))
	if err != nil {
		return nil, err
	}

	replaceImages := len(files) > 0
	if replaceImages {
		images, err := svc.uploadAll(ctx, files)
		if err != nil {
			return nil, err
		}
		existing.Images = images
	}

	existing.Title = title
	existing.Content = content

	if err := svc.NotesRepo.UpdateNote(ctx, noteID, svc.owner(userID), existing, replaceImages); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteNote removes the caller's note. A second delete of the same id
// reports not-found.
func (svc *NotesService) DeleteNote(ctx context.Context, noteID, userID string) error {
	return svc.NotesRepo.DeleteNote(ctx, noteID, svc.owner(userID))
}
