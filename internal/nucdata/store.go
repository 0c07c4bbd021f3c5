package nucdata

import (
	"log"
	"sync"

	"github.com/wildstyl3r/spsplot/internal/kinematics"
)

// Store loads each table at most once, on first use, and shares it between
// every reaction built from it.
type Store struct {
	MassPath       string
	ExcitationPath string
	Logger         *log.Logger

	massOnce sync.Once
	masses   *MassTable
	massErr  error

	excitationOnce sync.Once
	excitations    *ExcitationTable
	excitationErr  error
}

func NewStore(massPath, excitationPath string, logger *log.Logger) *Store {
	return &Store{MassPath: massPath, ExcitationPath: excitationPath, Logger: logger}
}

func (s *Store) Masses() (*MassTable, error) {
	s.massOnce.Do(func() {
		s.masses, s.massErr = LoadMassTable(s.MassPath)
	})
	return s.masses, s.massErr
}

func (s *Store) Excitations() (*ExcitationTable, error) {
	s.excitationOnce.Do(func() {
		s.excitations, s.excitationErr = LoadExcitationTable(s.ExcitationPath)
	})
	return s.excitations, s.excitationErr
}

// Tables returns both lookups bundled for kinematics.
func (s *Store) Tables() (kinematics.Tables, error) {
	masses, err := s.Masses()
	if err != nil {
		return kinematics.Tables{}, err
	}
	excitations, err := s.Excitations()
	if err != nil {
		return kinematics.Tables{}, err
	}
	return kinematics.Tables{Nuclides: masses, Excitations: excitations, Logger: s.Logger}, nil
}
