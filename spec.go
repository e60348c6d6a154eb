package attackpath

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Request is the JSON document a calling process hands to the run command.
type Request struct {
	TaskFile     string `json:"task_filepath"`
	MaxScenarios int    `json:"max_scenarios"`
	Dedup        string `json:"dedup,omitempty"`
}

// Response is written back once the search has finished. PathResult holds
// one token list per attack path.
type Response struct {
	PathResult [][]string `json:"path_result"`
	RunID      string     `json:"run_id,omitempty"`
}

func parseRequest(r io.Reader) (*Request, error) {
	var out Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out.TaskFile == "" {
		return nil, fmt.Errorf("request is missing task_filepath")
	}
	return &out, nil
}

// LoadRequestFromFile reads a request. A relative task path is resolved
// against the directory holding the request.
func LoadRequestFromFile(path string) (*Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	req, err := parseRequest(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !filepath.IsAbs(req.TaskFile) {
		req.TaskFile = filepath.Clean(filepath.Join(filepath.Dir(path), req.TaskFile))
	}
	return req, nil
}

// WriteResponse writes resp as JSON to path.
func WriteResponse(path string, resp *Response) error {
	if resp.PathResult == nil {
		resp.PathResult = [][]string{}
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
