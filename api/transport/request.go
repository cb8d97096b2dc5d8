package transport

// CreateTaskRequest is the POST /tasks body. Focus and Priority are optional;
// invalid priority values fall back to normal rather than failing the call.
type CreateTaskRequest struct {
	Text         string  `json:"text"`
	OwnerActorID *string `json:"ownerActorId"`
	Focus        bool    `json:"focus"`
	Priority     string  `json:"priority"`
}

// RegisterMemberRequest is the POST /board-members body.
type RegisterMemberRequest struct {
	ActorID string `json:"actorId"`
	Emoji   string `json:"emoji"`
	Name    string `json:"name"`
}

// MemberResponse is the roster entry shape returned to clients.
type MemberResponse struct {
	ActorID string `json:"actorId"`
	Emoji   string `json:"emoji"`
	Name    string `json:"name"`
}
