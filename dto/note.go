package dto

import (
	"time"

	"notevault/model"
)

// CreateNoteRequest binds from either a JSON body or the text fields of a
// multipart form. Image files are read from the multipart form directly by
// the handler, not through this struct.
type CreateNoteRequest struct {
	Title   string `form:"title" json:"title" binding:"required"`
	Content string `form:"content" json:"content" binding:"required"`
}

// UpdateNoteRequest carries no binding requirements: title and content
// overwrite the stored values with whatever the client sent, empty included.
// Only the images field has omitted-vs-cleared semantics, and that is decided
// by the presence of files in the multipart form, not by this struct.
type UpdateNoteRequest struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	response := NoteResponse{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		Images:    note.Images,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	// Clients iterate this field; never hand them a null.
	if response.Images == nil {
		response.Images = []string{}
	}

	return response
}

// Convert slice of notes to slice of NoteResponse
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
