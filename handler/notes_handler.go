package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"notevault/dto"
	"notevault/media"
	"notevault/middleware"
	"notevault/repository"
	"notevault/usecase"
	"notevault/utils"
)

type NoteHandler struct {
	Notes *usecase.NotesService
}

func NewNoteHandler(notes *usecase.NotesService) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

// imageFiles pulls the uploaded files out of a multipart form. JSON requests
// have no form; that is not an error, just a request without media.
func imageFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	notes, err := h.Notes.GetUserNotes(c.Request.Context(), userID)
	if err != nil {
		middleware.RecordNoteOperation("list", "failure")
		utils.InternalError(c, utils.CodeStoreFailure, "Failed to fetch notes")
		return
	}

	middleware.RecordNoteOperation("list", "success")
	utils.Success(c, dto.ToNoteResponses(notes))
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	noteID := c.Param("id")
	if uuid.Validate(noteID) != nil {
		utils.BadRequest(c, utils.CodeValidationFailed, "Invalid note id")
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)

	note, err := h.Notes.GetNote(c.Request.Context(), noteID, userID)
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
		return
	case err != nil:
		utils.BadRequest(c, utils.CodeStoreFailure, "Failed to fetch note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, utils.CodeValidationFailed, "Invalid request body")
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)
	files := imageFiles(c)

	note, err := h.Notes.CreateNote(c.Request.Context(), userID, req.Title, req.Content, files)
	if err != nil {
		middleware.RecordNoteOperation("create", "failure")
		switch {
		case errors.Is(err, usecase.ErrInvalidNote):
			utils.BadRequest(c, utils.CodeValidationFailed, err.Error())
		case errors.Is(err, media.ErrUploadFailed):
			middleware.MediaUploadsTotal.WithLabelValues("failure").Inc()
			utils.BadRequest(c, utils.CodeUploadFailed, "Failed to upload image")
		default:
			utils.BadRequest(c, utils.CodeStoreFailure, "Failed to create note")
		}
		return
	}

	middleware.RecordNoteOperation("create", "success")
	middleware.MediaUploadsTotal.WithLabelValues("success").Add(float64(len(files)))
	utils.Created(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	noteID := c.Param("id")
	if uuid.Validate(noteID) != nil {
		utils.BadRequest(c, utils.CodeValidationFailed, "Invalid note id")
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, utils.CodeValidationFailed, "Invalid request body")
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)
	files := imageFiles(c)

	note, err := h.Notes.UpdateNote(c.Request.Context(), noteID, userID, req.Title, req.Content, files)
	if err != nil {
		middleware.RecordNoteOperation("update", "failure")
		switch {
		case errors.Is(err, repository.ErrNoteNotFound):
			utils.NotFound(c, "Note not found")
		case errors.Is(err, media.ErrUploadFailed):
			middleware.MediaUploadsTotal.WithLabelValues("failure").Inc()
			utils.BadRequest(c, utils.CodeUploadFailed, "Failed to upload image")
		default:
			utils.BadRequest(c, utils.CodeStoreFailure, "Failed to update note")
		}
		return
	}

	middleware.RecordNoteOperation("update", "success")
	middleware.MediaUploadsTotal.WithLabelValues("success").Add(float64(len(files)))
	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	noteID := c.Param("id")
	if uuid.Validate(noteID) != nil {
		utils.BadRequest(c, utils.CodeValidationFailed, "Invalid note id")
		return
	}

	userID := c.GetString(middleware.ContextUserIDKey)

	err := h.Notes.DeleteNote(c.Request.Context(), noteID, userID)
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		middleware.RecordNoteOperation("delete", "failure")
		utils.NotFound(c, "Note not found")
		return
	case err != nil:
		middleware.RecordNoteOperation("delete", "failure")
		utils.BadRequest(c, utils.CodeStoreFailure, "Failed to delete note")
		return
	}

	middleware.RecordNoteOperation("delete", "success")
	utils.SuccessMessage(c, "Note deleted")
}
