package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

// The stub answers every completion with a title derived from the first
// words of the note, so end-to-end runs are deterministic.

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Store *bool  `json:"store"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": cannedTitle(req.Messages[len(req.Messages)-1].Content)}},
			},
		})
	})
	mux.HandleFunc("/v1/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{
			"choices": []map[string]any{{"text": " " + cannedTitle(req.Prompt), "index": 0}},
		})
	})
	mux.HandleFunc("/inference/v1/responses", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			http.Error(w, `{"error":"missing credential"}`, http.StatusUnauthorized)
			return
		}
		var req responsesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Store == nil || *req.Store {
			http.Error(w, `{"error":"store must be false"}`, http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{
			"output": []map[string]any{
				{"type": "message", "content": []map[string]any{{"type": "output_text", "text": cannedTitle(req.Input)}}},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

// cannedTitle takes the first four words of the note. The built-in templates
// end their instructions at the first blank line and the default one labels
// the note with a "Note:" line, which is skipped.
func cannedTitle(prompt string) string {
	body := prompt
	if i := strings.Index(prompt, "\n\n"); i >= 0 {
		body = prompt[i+2:]
	}
	body = strings.TrimLeft(body, " \t\n")
	if rest, ok := strings.CutPrefix(body, "Note:"); ok {
		body = rest
	}
	words := strings.Fields(body)
	if len(words) > 4 {
		words = words[:4]
	}
	if len(words) == 0 {
		return "Untitled note"
	}
	return `"` + strings.Join(words, " ") + `"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
