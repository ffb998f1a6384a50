package upstream

// Wire shapes of the remote source. Mapped to internal models at the
// client boundary so upstream field renames stay contained here.

type apiUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiPost struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}

type apiComment struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}
