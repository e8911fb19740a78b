package gyms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=gyms_mocks_test.go -package=gyms_test

type gymsRepo interface {
	Add(ctx context.Context, gym Gym) (*Gym, error)
	Get(ctx context.Context, id int) (*Gym, error)
	Update(ctx context.Context, gym *Gym) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Gym, error)
}

type ListResponse struct {
	Gyms []Gym `json:"gyms"`
}

type DeleteGymResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateGymResponse struct {
	UpdatedID int `json:"updatedId"`
}

type Handler struct {
	repo gymsRepo
}

func NewHandler(repo gymsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gyms.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var gym Gym
	if err := json.NewDecoder(r.Body).Decode(&gym); err != nil {
		log.Tracef("new gym, unmarshal json params: %s", err)
		http.Error(w, "add gym failed", http.StatusBadRequest)
		return
	}

	if err := gym.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if gym.CreatedAt.IsZero() {
		gym.CreatedAt = time.Now()
	}

	addedGym, err := handler.repo.Add(ctx, gym)
	if err != nil {
		if errors.Is(err, ErrGymExists) {
			http.Error(w, "gym already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add new gym [%s, %s]: %s", gym.Name, gym.City, err)
		http.Error(w, "error, failed to add new gym", http.StatusInternalServerError)
		return
	}

	addedGymJson, err := json.Marshal(addedGym)
	if err != nil {
		log.Errorf("failed to marshal new gym: %s", err)
		http.Error(w, "error, failed to add new gym", http.StatusInternalServerError)
		return
	}

	log.Debugf("new gym added: %s", addedGymJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedGymJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gyms.get")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	gym, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrGymNotFound) {
			http.Error(w, "gym not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get gym %d: %s", id, err)
		http.Error(w, "failed to get gym", http.StatusInternalServerError)
		return
	}

	gymJson, err := json.Marshal(gym)
	if err != nil {
		log.Errorf("failed to marshal gym: %s", err)
		http.Error(w, "failed to marshal gym", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, gymJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gyms.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var gym Gym
	if err := json.NewDecoder(r.Body).Decode(&gym); err != nil {
		log.Errorf("update gym, unmarshal json params: %s", err)
		http.Error(w, "update gym failed", http.StatusBadRequest)
		return
	}

	if err := gym.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &gym); err != nil {
		if errors.Is(err, ErrGymNotFound) {
			http.Error(w, "gym not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrGymExists) {
			http.Error(w, "gym already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to update gym %d: %s", gym.ID, err)
		http.Error(w, "error, failed to update gym", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateGymResponse{
		UpdatedID: gym.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gyms.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrGymNotFound) {
			http.Error(w, "gym not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrGymInUse) {
			http.Error(w, "gym has sessions attached", http.StatusConflict)
			return
		}
		log.Errorf("failed to delete gym %d: %s", id, err)
		http.Error(w, "gym not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteGymResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gyms.list")
	defer span.End()

	gyms, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list gyms error: %s", err)
		http.Error(w, "failed to get gyms", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(ListResponse{
		Gyms: gyms,
	})
	if err != nil {
		log.Errorf("marshal gyms error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}
