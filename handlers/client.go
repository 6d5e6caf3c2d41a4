package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"coach-crm/models"
	"coach-crm/suggest"
	"coach-crm/utils"
	"coach-crm/validation"
)

const clientEventsTopic = "client_events"

type ClientHandler struct {
	repo    models.Repository
	suggest *suggest.Service
	kafka   utils.KafkaProducer
}

func NewClientHandler(repo models.Repository, svc *suggest.Service, kafka utils.KafkaProducer) *ClientHandler {
	return &ClientHandler{
		repo:    repo,
		suggest: svc,
		kafka:   kafka,
	}
}

// UpdateRequest is a sparse edit: absent fields are left unchanged,
// present-but-empty values clear.
type UpdateRequest struct {
	FullName  *string `json:"fullName"`
	Age       *string `json:"age"`
	Gender    *string `json:"gender"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Goal      *string `json:"goal"`
	GoalText  *string `json:"goalText"`
	StartDate *string `json:"startDate"`
}

type EntryRequest struct {
	Date  string   `json:"date"`
	Title string   `json:"title"`
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var form validation.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if res := validation.ValidateForm(form); !res.Valid {
		c.JSON(http.StatusBadRequest, res)
		return
	}

	client, err := h.repo.Add(c.Request.Context(), form.Input())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.kafka != nil {
		go h.sendClientEvent("client_created", client)
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	// Blank query returns the full collection unfiltered.
	clients, err := h.repo.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id := c.Param("id")

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Validate the record as it would look after the merge, so a sparse
	// edit cannot sneak an invalid value past the form rules.
	if res := validation.ValidateForm(mergedForm(existing, req)); !res.Valid {
		c.JSON(http.StatusBadRequest, res)
		return
	}

	client, err := h.repo.Update(c.Request.Context(), id, toClientUpdate(req))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.kafka != nil {
		go h.sendClientEvent("client_updated", client)
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	if h.kafka != nil {
		go func(id string) {
			h.sendRawEvent(map[string]interface{}{
				"event": "client_deleted",
				"id":    id,
			})
		}(id)
	}

	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) AddHistoryEntry(c *gin.Context) {
	id := c.Param("id")

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry title and date are required"})
		return
	}

	client, err := h.repo.AddHistoryEntry(c.Request.Context(), id, models.EntryInput{
		Date:  req.Date,
		Title: req.Title,
		Notes: req.Notes,
		Tags:  req.Tags,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.kafka != nil {
		go h.sendClientEvent("history_added", client)
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) SuggestExercises(c *gin.Context) {
	client, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	// A degraded result is still a 200: the fallback table always
	// produces exercises.
	c.JSON(http.StatusOK, h.suggest.Suggest(c.Request.Context(), client.Goal, limit))
}

func (h *ClientHandler) sendClientEvent(eventType string, client *models.Client) {
	h.sendRawEvent(map[string]interface{}{
		"event": eventType,
		"data":  client,
	})
}

func (h *ClientHandler) sendRawEvent(event interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.kafka.SendJSON(ctx, clientEventsTopic, event); err != nil {
		log.Printf("Failed to send Kafka message: %v", err)
	}
}

func mergedForm(existing *models.Client, req UpdateRequest) validation.Form {
	form := validation.Form{
		FullName:  existing.FullName,
		Age:       strconv.Itoa(existing.Age),
		Gender:    existing.Gender,
		Email:     existing.Email,
		Phone:     existing.Phone,
		Goal:      existing.Goal,
		GoalText:  existing.GoalText,
		StartDate: existing.StartDate,
	}

	if req.FullName != nil {
		form.FullName = *req.FullName
	}
	if req.Age != nil {
		form.Age = *req.Age
	}
	if req.Gender != nil {
		form.Gender = *req.Gender
	}
	if req.Email != nil {
		form.Email = *req.Email
	}
	if req.Phone != nil {
		form.Phone = *req.Phone
	}
	if req.Goal != nil {
		form.Goal = *req.Goal
	}
	if req.GoalText != nil {
		form.GoalText = *req.GoalText
	}
	if req.StartDate != nil {
		form.StartDate = *req.StartDate
	}
	return form
}

func toClientUpdate(req UpdateRequest) models.ClientUpdate {
	upd := models.ClientUpdate{
		FullName:  req.FullName,
		Gender:    req.Gender,
		Email:     req.Email,
		Phone:     req.Phone,
		Goal:      req.Goal,
		GoalText:  req.GoalText,
		StartDate: req.StartDate,
	}
	if req.Age != nil {
		if age, err := strconv.Atoi(*req.Age); err == nil {
			upd.Age = &age
		}
	}
	return upd
}
