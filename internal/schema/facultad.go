package schema

// Facultad is an academic faculty as returned by the API.
type Facultad struct {
	FacultadID    int64     `json:"facultadId,omitempty"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion,omitempty"`
	Ubicacion     string    `json:"ubicacion,omitempty"`
	Decano        string    `json:"decano,omitempty"`
	FechaRegistro Timestamp `json:"fechaRegistro"`
	Activo        *bool     `json:"activo,omitempty"`
}

// FacultadRequest is the create/update payload for a faculty.
type FacultadRequest struct {
	Nombre      string `json:"nombre" mapstructure:"nombre"`
	Descripcion string `json:"descripcion,omitempty" mapstructure:"descripcion"`
	Ubicacion   string `json:"ubicacion,omitempty" mapstructure:"ubicacion"`
	Decano      string `json:"decano,omitempty" mapstructure:"decano"`
	Activo      *bool  `json:"activo,omitempty" mapstructure:"activo"`
}

// IsActive reports whether the faculty is explicitly active.
func (f Facultad) IsActive() bool { return f.Activo != nil && *f.Activo }

// IsInactive reports whether the faculty is explicitly inactive.
func (f Facultad) IsInactive() bool { return f.Activo != nil && !*f.Activo }
