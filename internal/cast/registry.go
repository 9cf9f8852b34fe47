package cast

// StartingFavor is the favor every character begins with.
const StartingFavor = 20

// Entry seeds one character in a roster.
type Entry struct {
	Character Kind
	Scene     string // Scene id the character's dialogue starts at
}

// Status is the mutable per-character state.
type Status struct {
	Character    Kind   `json:"character"`
	CurrentScene string `json:"scene"`
	Favor        int    `json:"favor"`
	Alive        bool   `json:"alive"`
}

// Registry owns the status of every character in the roster.
// Roster order is preserved; it is the order the selection cursor walks.
type Registry struct {
	statuses []Status
	index    map[Kind]int
}

// NewRegistry seeds a registry from a roster. Duplicate characters keep
// their first entry.
func NewRegistry(roster []Entry) *Registry {
	r := &Registry{
		statuses: make([]Status, 0, len(roster)),
		index:    make(map[Kind]int, len(roster)),
	}
	for _, e := range roster {
		if _, dup := r.index[e.Character]; dup {
			continue
		}
		r.index[e.Character] = len(r.statuses)
		r.statuses = append(r.statuses, Status{
			Character:    e.Character,
			CurrentScene: e.Scene,
			Favor:        StartingFavor,
			Alive:        true,
		})
	}
	return r
}

// Len returns the roster size.
func (r *Registry) Len() int {
	return len(r.statuses)
}

// Get returns a copy of the character's status.
func (r *Registry) Get(k Kind) (Status, bool) {
	i, ok := r.index[k]
	if !ok {
		return Status{}, false
	}
	return r.statuses[i], true
}

// At returns the status at roster position i.
func (r *Registry) At(i int) (Status, bool) {
	if i < 0 || i >= len(r.statuses) {
		return Status{}, false
	}
	return r.statuses[i], true
}

// Statuses returns a copy of every status in roster order.
func (r *Registry) Statuses() []Status {
	out := make([]Status, len(r.statuses))
	copy(out, r.statuses)
	return out
}

// AdvanceDialogue points the character at a new scene.
// No-op for unknown or dead characters.
func (r *Registry) AdvanceDialogue(k Kind, sceneID string) {
	if s := r.living(k); s != nil {
		s.CurrentScene = sceneID
	}
}

// AdjustFavor adds delta to the character's favor, never going below zero.
// No-op for unknown or dead characters.
func (r *Registry) AdjustFavor(k Kind, delta int) {
	s := r.living(k)
	if s == nil {
		return
	}
	s.Favor += delta
	if s.Favor < 0 {
		s.Favor = 0
	}
}

// MarkDead flips Alive to false. It never flips back.
func (r *Registry) MarkDead(k Kind) {
	if i, ok := r.index[k]; ok {
		r.statuses[i].Alive = false
	}
}

// Restore overwrites the status of every character present in both the
// registry and statuses. Characters not in the roster are ignored, and a
// character already dead stays dead.
func (r *Registry) Restore(statuses []Status) {
	for _, st := range statuses {
		i, ok := r.index[st.Character]
		if !ok {
			continue
		}
		if st.Favor < 0 {
			st.Favor = 0
		}
		if !r.statuses[i].Alive {
			st.Alive = false
		}
		r.statuses[i] = st
	}
}

func (r *Registry) living(k Kind) *Status {
	i, ok := r.index[k]
	if !ok || !r.statuses[i].Alive {
		return nil
	}
	return &r.statuses[i]
}
