package main

// Session is the caller-owned selection state for one workflow run. There is
// no process-wide selection; every operation takes the session it affects.
type Session struct {
	Root          string
	Solution      string // optional; empty when the tree has no solutions
	Project       string
	Platform      string
	Configuration string

	// Metadata holds the parse result for Project once it has been chosen.
	Metadata *ParseResult
}

// SelectionPayload is the complete boundary payload handed to downstream
// collaborators (build-database exporters, status displays). Nothing else
// crosses that boundary.
type SelectionPayload struct {
	Solution      string `json:"solution,omitempty"`
	Project       string `json:"project"`
	Platform      string `json:"platform,omitempty"`
	Configuration string `json:"configuration,omitempty"`
}

func (s *Session) Payload() SelectionPayload {
	return SelectionPayload{
		Solution:      s.Solution,
		Project:       s.Project,
		Platform:      s.Platform,
		Configuration: s.Configuration,
	}
}
