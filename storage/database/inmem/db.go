// Package inmemdb provides map-backed repositories used by tests and local
// development without a database.
package inmemdb

import (
	"sync"

	"github.com/jnanasetu/platform/core/assessment"
	"github.com/jnanasetu/platform/core/roadmap"
	"github.com/jnanasetu/platform/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	assessmentTable struct {
		mutex sync.RWMutex
		table map[string]*assessment.Assessment
	}

	roadmapTable struct {
		mutex sync.RWMutex
		table map[string]*roadmap.Roadmap
	}

	DB struct {
		user       *userTable
		assessment *assessmentTable
		roadmap    *roadmapTable
	}
)

func Open() *DB {
	return &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		assessment: &assessmentTable{table: make(map[string]*assessment.Assessment)},
		roadmap:    &roadmapTable{table: make(map[string]*roadmap.Roadmap)},
	}
}
