package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noteskart/noteskart/internal/auth"
	"github.com/noteskart/noteskart/internal/aws"
	"github.com/noteskart/noteskart/internal/notes"
	"github.com/noteskart/noteskart/internal/validation"
)

// RegisterNotesRoutes registers upload and listing routes.
func RegisterNotesRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	noteStore := notes.NewStore(cfg.DynamoDBClient, cfg.NotesTable)
	uploader := aws.NewUploader(cfg.S3Client, cfg.FilesBucket, cfg.Region)

	r.POST("/notes", auth.RequireLogin(), func(c *gin.Context) {
		ctx := c.Request.Context()

		var form validation.CreateNoteForm
		if err := validation.BindFormAndValidate(c, &form, v); err != nil {
			return
		}

		fileHeader, err := c.FormFile("streamfile")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("[notes] open upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading file"})
			return
		}
		defer file.Close()

		noteID := uuid.NewString()
		key := fmt.Sprintf("notes/%s/%s", noteID, fileHeader.Filename)
		url, err := uploader.Upload(ctx, key, fileHeader.Header.Get("Content-Type"), file)
		if err != nil {
			log.Printf("[notes] upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading file"})
			return
		}

		note := notes.Note{
			NoteID:      noteID,
			Title:       form.Title,
			Owner:       form.Owner,
			Description: form.Description,
			FileURL:     url,
			FileName:    fileHeader.Filename,
		}
		if err := noteStore.Create(ctx, note); err != nil {
			log.Printf("[notes] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving note"})
			return
		}

		auth.Flash(c, "Uploaded successfully!")
		c.Redirect(http.StatusFound, "/")
	})

	r.GET("/listnotes", auth.RequireLogin(), func(c *gin.Context) {
		all, err := noteStore.List(c.Request.Context())
		if err != nil {
			log.Printf("[notes] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching notes"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notes": all, "flashes": auth.Flashes(c)})
	})

	r.GET("/listnotes/:id", func(c *gin.Context) {
		note, err := noteStore.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Printf("[notes] get failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching note"})
			return
		}
		if note == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"note": note, "flashes": auth.Flashes(c)})
	})
}
