package router

import (
	"sort"

	"rp-market/internal/transport/http/handler"
)

// Module mounts its routes onto the shared groups.
type Module interface{ Mount(handler.Routes) }

// Implementing prioritizer controls mount order (lower first, default 100).
type prioritizer interface{ Priority() int }

type Registry struct {
	mods []Module
}

func (r *Registry) Register(mods ...Module) {
	r.mods = append(r.mods, mods...)
}

func (r *Registry) MountAll(rt handler.Routes) {
	mods := append([]Module(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(rt)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
