package models

// RepositoryNode is a pinned item as returned by the GraphQL API.
// Pinned gists decode to a zero value since only repository fields are selected.
type RepositoryNode struct {
	Name        string
	URL         string
	Description string
	IsArchived  bool
	Homepage    string `json:"homepage,omitempty"`
}

// Project is a pinned repository reshaped for display.
type Project struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Post        string `json:"post,omitempty"`
	Template    bool   `json:"template"`
}

type UserPinnedItems struct {
	User *pinnedItems
}

type pinnedItems struct {
	PinnedItems *PinnedItemsNode
}

type PinnedItemsNode struct {
	Edges *[]PinnedItemEdge
}

type PinnedItemEdge struct {
	Node *RepositoryNode
}
