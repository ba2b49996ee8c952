package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/popcornroulette/api/internal/database"
	apperrors "github.com/popcornroulette/api/internal/errors"
	"github.com/popcornroulette/api/internal/models"
	"github.com/popcornroulette/api/internal/vocab"
)

func (s *Server) serviceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Popcorn Roulette API",
		"version": "1.0.0",
		"status":  "healthy",
		"endpoints": gin.H{
			"health":      "GET /health",
			"roulette":    "GET /movies/roulette",
			"listMovies":  "GET /movies",
			"countMovies": "GET /movies/available-movies",
		},
	})
}

func (s *Server) healthCheck(c *gin.Context) {
	if err := database.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// roulette picks one random movie matching the filters. An empty result
// is a distinguishable outcome, reported as 404 with an explanation.
func (s *Server) roulette(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	movie, err := s.repo.Random(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to spin the roulette"})
		return
	}
	if movie == nil {
		message := "no movies found matching your filters"
		if filters.IsEmpty() {
			message = "the catalog is empty"
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (s *Server) countMovies(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	total, err := s.repo.Count(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to count movies"})
		return
	}

	c.JSON(http.StatusOK, CountResponse{
		Total:   total,
		Filters: echoFilters(filters),
	})
}

func (s *Server) listMovies(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	page, limit, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	movies, total, err := s.repo.List(filters, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch movies"})
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, ListResponse{
		Movies: movies,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func (s *Server) getMovie(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	movie, err := s.repo.FindByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch movie"})
		return
	}
	if movie == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "movie not found"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (s *Server) updateMovie(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updates, err := req.toUpdates()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no fields to update"})
		return
	}

	movie, err := s.repo.Update(id, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update movie"})
		return
	}
	if movie == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "movie not found"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (s *Server) deleteMovie(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	deleted, err := s.repo.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete movie"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "movie not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.ValidationError("id must be a positive integer")
	}
	return uint(id), nil
}

// toUpdates converts the request to a column update map, validating
// vocabulary-bound fields
func (r *UpdateMovieRequest) toUpdates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.TitlePtBr != nil {
		updates["title_pt_br"] = *r.TitlePtBr
	}
	if r.OriginalTitle != nil {
		updates["original_title"] = *r.OriginalTitle
	}
	if r.Countries != nil {
		for _, country := range r.Countries {
			if !vocab.IsValidCountry(country) {
				return nil, apperrors.ValidationError("invalid country: " + country)
			}
		}
		updates["countries"] = toStringList(r.Countries)
	}
	if r.AgeRating != nil {
		rating, err := vocab.ParseAgeRating(*r.AgeRating)
		if err != nil {
			return nil, apperrors.ValidationError("invalid age rating: " + *r.AgeRating)
		}
		updates["age_rating"] = rating
	}
	if r.Genres != nil {
		for _, genre := range r.Genres {
			if !vocab.IsValidGenre(genre) {
				return nil, apperrors.ValidationError("invalid genre: " + genre)
			}
		}
		updates["genres"] = toStringList(r.Genres)
	}
	if r.ImdbRating != nil {
		updates["imdb_rating"] = *r.ImdbRating
	}
	if r.Duration != nil {
		updates["duration"] = *r.Duration
	}
	if r.Year != nil {
		updates["year"] = *r.Year
	}
	if r.Directors != nil {
		updates["directors"] = toStringList(r.Directors)
	}
	if r.Cast != nil {
		updates["cast"] = r.Cast
	}
	if r.WhereToWatch != nil {
		updates["where_to_watch"] = toStringList(r.WhereToWatch)
	}
	if r.PosterURL != nil {
		updates["poster_url"] = *r.PosterURL
	}
	if r.Synopsis != nil {
		updates["synopsis"] = *r.Synopsis
	}
	if r.SynopsisPtBr != nil {
		updates["synopsis_pt_br"] = *r.SynopsisPtBr
	}

	return updates, nil
}

func toStringList(values []string) models.StringList {
	list := make(models.StringList, len(values))
	copy(list, values)
	return list
}
