package patients

// Location es un lugar de atención tal como lo lista el backend (v=default).
type Location struct {
	UUID    string `json:"uuid"`
	Display string `json:"display"`
}
