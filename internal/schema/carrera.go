package schema

// Carrera is a degree program as returned by the API. NombreFacultad is
// populated by the server for display only.
type Carrera struct {
	CarreraID         int64     `json:"carreraId,omitempty"`
	FacultadID        int64     `json:"facultadId"`
	Nombre            string    `json:"nombre"`
	Descripcion       string    `json:"descripcion,omitempty"`
	DuracionSemestres int       `json:"duracionSemestres"`
	TituloOtorgado    string    `json:"tituloOtorgado,omitempty"`
	FechaRegistro     Timestamp `json:"fechaRegistro"`
	Activo            *bool     `json:"activo,omitempty"`
	NombreFacultad    string    `json:"nombreFacultad,omitempty"`
}

// CarreraRequest is the create/update payload for a program.
type CarreraRequest struct {
	FacultadID        int64  `json:"facultadId" mapstructure:"facultadId"`
	Nombre            string `json:"nombre" mapstructure:"nombre"`
	Descripcion       string `json:"descripcion,omitempty" mapstructure:"descripcion"`
	DuracionSemestres int    `json:"duracionSemestres" mapstructure:"duracionSemestres"`
	TituloOtorgado    string `json:"tituloOtorgado,omitempty" mapstructure:"tituloOtorgado"`
	Activo            *bool  `json:"activo,omitempty" mapstructure:"activo"`
}

// IsActive reports whether the program is explicitly active.
func (c Carrera) IsActive() bool { return c.Activo != nil && *c.Activo }

// IsInactive reports whether the program is explicitly inactive.
func (c Carrera) IsInactive() bool { return c.Activo != nil && !*c.Activo }

// Bool returns a pointer to b, for optional flags.
func Bool(b bool) *bool { return &b }
