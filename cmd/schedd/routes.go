package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Maeell04/TP1-Real-time-system/internal/rta"
	"github.com/Maeell04/TP1-Real-time-system/internal/sim"
	"github.com/Maeell04/TP1-Real-time-system/internal/task"
	"github.com/Maeell04/TP1-Real-time-system/internal/taskfile"
)

// request bodies larger than this are cut off
const maxBodyBytes = 1 << 20

func newRouter() *httprouter.Router {
	router := httprouter.New()
	router.GET("/ping", ping)
	router.POST("/simulate", simulate)
	router.POST("/feasibility", feasibility)
	return router
}

func ping(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type simulateRequest struct {
	Tasks []taskfile.Descriptor `json:"tasks"`
	// Horizon overrides the default picked from the task periods.
	Horizon *float64 `json:"horizon,omitempty"`
}

type jobPayload struct {
	Task             string   `json:"task"`
	Instance         int      `json:"instance"`
	ReleaseTime      float64  `json:"release_time"`
	AbsoluteDeadline float64  `json:"absolute_deadline"`
	RemainingTime    float64  `json:"remaining_time"`
	StartedAt        *float64 `json:"started_at"`
	CompletedAt      *float64 `json:"completed_at"`
}

type simulateResponse struct {
	Timeline        []sim.TimelineEntry `json:"timeline"`
	MissedDeadlines []jobPayload        `json:"missed_deadlines"`
	UnfinishedJobs  []jobPayload        `json:"unfinished_jobs"`
	SimulationEnd   float64             `json:"simulation_end"`
}

func simulate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req simulateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tasks, err := taskfile.Tasks(req.Tasks)
	if err != nil {
		writeError(w, err)
		return
	}
	horizon := sim.DefaultHorizon(tasks)
	if req.Horizon != nil {
		horizon = *req.Horizon
	}

	res, err := sim.Simulate(tasks, horizon)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, simulateResponse{
		Timeline:        res.Timeline,
		MissedDeadlines: jobPayloads(res.MissedDeadlines),
		UnfinishedJobs:  jobPayloads(res.UnfinishedJobs),
		SimulationEnd:   res.SimulationEnd,
	})
}

type feasibilityRequest struct {
	Tasks  []taskfile.Descriptor `json:"tasks"`
	Policy string                `json:"policy"`
	// Preemptive defaults to true when omitted.
	Preemptive *bool `json:"preemptive,omitempty"`
}

type resultPayload struct {
	Task         string  `json:"task"`
	Rank         int     `json:"rank"`
	Priority     *int    `json:"priority,omitempty"`
	ResponseTime float64 `json:"response_time"`
	DeadlineMet  bool    `json:"deadline_met"`
	Iterations   int     `json:"iterations"`
	Blocking     float64 `json:"blocking"`
}

type feasibilityResponse struct {
	Policy     string          `json:"policy"`
	Preemptive bool            `json:"preemptive"`
	Feasible   bool            `json:"feasible"`
	Results    []resultPayload `json:"results"`
}

func feasibility(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req feasibilityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	policy, err := rta.ParsePolicy(req.Policy)
	if err != nil {
		writeError(w, err)
		return
	}
	tasks, err := taskfile.StaticTasks(req.Tasks)
	if err != nil {
		writeError(w, err)
		return
	}
	preemptive := req.Preemptive == nil || *req.Preemptive

	rep, err := rta.CheckFeasibility(tasks, policy, preemptive)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]resultPayload, 0, len(rep.Results))
	for _, res := range rep.Results {
		payload := resultPayload{
			Task:         res.Task.Name(),
			Rank:         res.Rank,
			ResponseTime: res.ResponseTime,
			DeadlineMet:  res.DeadlineMet,
			Iterations:   res.Iterations,
			Blocking:     res.Blocking,
		}
		if v, ok := res.Task.Priority(); ok {
			payload.Priority = &v
		}
		results = append(results, payload)
	}
	writeJSON(w, http.StatusOK, feasibilityResponse{
		Policy:     rep.Policy.String(),
		Preemptive: rep.Preemptive,
		Feasible:   rep.Feasible,
		Results:    results,
	})
}

func jobPayloads(jobs []*task.Job) []jobPayload {
	out := make([]jobPayload, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobPayload{
			Task:             j.Task.Name(),
			Instance:         j.Instance,
			ReleaseTime:      j.ReleaseTime,
			AbsoluteDeadline: j.AbsoluteDeadline,
			RemainingTime:    j.Remaining,
			StartedAt:        j.StartedAt,
			CompletedAt:      j.CompletedAt,
		})
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, task.NewValidationError("cannot read request body"))
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, task.NewValidationError("cannot parse request body: %v", err))
		return false
	}
	return true
}

// writeError reports every domain error as 422 unprocessable entity:
// the request was syntactically fine but does not describe a usable
// task set.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
