package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mogbrew/internal/db"
	"github.com/mogbrew/internal/insight"
	"github.com/mogbrew/internal/service"
)

type logBeerPayload struct {
	UserID        string  `json:"user_id"`
	BeerName      string  `json:"beer_name"`
	Brand         string  `json:"brand"`
	ABV           float64 `json:"abv"`
	ContainerType string  `json:"container_type"`
	VolumeML      int     `json:"volume_ml"`
	Quantity      *int    `json:"quantity"`
	Notes         string  `json:"notes"`
}

type beerEntryPayload struct {
	ID            uint      `json:"id"`
	UserID        string    `json:"user_id"`
	BeerName      string    `json:"beer_name"`
	Brand         string    `json:"brand"`
	ABV           float64   `json:"abv"`
	ContainerType string    `json:"container_type"`
	VolumeML      int       `json:"volume_ml"`
	StdDrinks     float64   `json:"std_drinks"`
	Notes         string    `json:"notes,omitempty"`
	NotesHTML     string    `json:"notes_html,omitempty"`
	LoggedAt      time.Time `json:"logged_at"`
}

// LogBeers 记录 quantity 瓶相同的酒，缺省为 1
func (a *API) LogBeers(c *gin.Context) {
	var payload logBeerPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	userID, ok := resolveUserID(c, payload.UserID)
	if !ok {
		return
	}

	// 未传 quantity 时按 1 瓶，显式的 0 或负数交给校验拒绝
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}

	rows, err := a.beers.Log(c.Request.Context(), service.LogInput{
		UserID:        userID,
		BeerName:      payload.BeerName,
		Brand:         payload.Brand,
		ABV:           payload.ABV,
		ContainerType: payload.ContainerType,
		VolumeML:      payload.VolumeML,
		Quantity:      quantity,
		Notes:         payload.Notes,
	})
	if err != nil {
		a.handleBeerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"logged":  len(rows),
		"entries": a.entriesPayload(rows, false),
	})
}

// Today 返回今天的记录与汇总
func (a *API) Today(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	summary, rows, err := a.beers.TodaySummary(c.Request.Context(), userID)
	if err != nil {
		a.handleBeerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"summary": summary,
		"entries": a.entriesPayload(rows, false),
	})
}

// Recent 返回快速添加用的最近组合
func (a *API) Recent(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	recent, err := a.beers.Recent(c.Request.Context(), userID, parseLimitQuery(c, "limit", 5))
	if err != nil {
		a.handleBeerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recent": recent})
}

// DayBeers 返回某一天的记录，附带渲染后的备注
func (a *API) DayBeers(c *gin.Context) {
	userID, ok := resolveUserID(c, "")
	if !ok {
		return
	}

	day := c.Param("day")
	rows, err := a.beers.Day(c.Request.Context(), userID, day)
	if err != nil {
		a.handleBeerError(c, err)
		return
	}

	var volume int
	var std float64
	for _, row := range rows {
		volume += row.VolumeML
		std += insight.StdDrinks(row.VolumeML, row.ABV)
	}

	c.JSON(http.StatusOK, gin.H{
		"day": day,
		"summary": service.DaySummary{
			Day:       day,
			Count:     len(rows),
			VolumeML:  volume,
			StdDrinks: std,
		},
		"entries": a.entriesPayload(rows, true),
	})
}

// DeleteBeer 硬删除一条记录
func (a *API) DeleteBeer(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := a.beers.Delete(c.Request.Context(), id); err != nil {
		a.handleBeerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *API) entriesPayload(rows []db.BeerLog, withNotes bool) []beerEntryPayload {
	items := make([]beerEntryPayload, 0, len(rows))
	for _, row := range rows {
		item := beerEntryPayload{
			ID:            row.ID,
			UserID:        row.UserID,
			BeerName:      row.BeerName,
			Brand:         row.Brand,
			ABV:           row.ABV,
			ContainerType: row.ContainerType,
			VolumeML:      row.VolumeML,
			StdDrinks:     insight.StdDrinks(row.VolumeML, row.ABV),
			Notes:         row.Notes,
			LoggedAt:      row.LoggedAt.UTC(),
		}
		if withNotes && a.notes != nil {
			item.NotesHTML = a.notes.Render(row.Notes)
		}
		items = append(items, item)
	}
	return items
}

func (a *API) handleBeerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		respondError(c, http.StatusBadRequest, "unknown user")
	case errors.Is(err, service.ErrInvalidEntry):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidDay):
		respondError(c, http.StatusBadRequest, "invalid day, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, "entry not found")
	default:
		a.recordServerError(c, "beers", err)
	}
}
