package store

import (
	"database/sql"
	"errors"
	"time"
)

// Preset is a named set of animation tuning parameters.
type Preset struct {
	ID                 string
	Name               string
	ParticleCount      int
	Easing             float64
	RotationEasing     float64
	HeartbeatAmplitude float64
	HeartbeatSpeed     float64
	StarfieldRadius    float64
	HeartScaleX        float64
	HeartScaleY        float64
	HeartScaleZ        float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PresetRepository provides CRUD operations for presets.
type PresetRepository struct {
	db *sql.DB
}

// Presets returns the preset repository for this store.
func (s *Store) Presets() *PresetRepository {
	return &PresetRepository{db: s.db}
}

const presetColumns = `id, name, particle_count, easing, rotation_easing,
	heartbeat_amplitude, heartbeat_speed, starfield_radius,
	heart_scale_x, heart_scale_y, heart_scale_z, created_at, updated_at`

// Create inserts a new preset into the database.
func (r *PresetRepository) Create(p *Preset) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO presets (`+presetColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.ParticleCount, p.Easing, p.RotationEasing,
		p.HeartbeatAmplitude, p.HeartbeatSpeed, p.StarfieldRadius,
		p.HeartScaleX, p.HeartScaleY, p.HeartScaleZ, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func scanPreset(row interface{ Scan(...any) error }) (*Preset, error) {
	p := &Preset{}
	err := row.Scan(
		&p.ID, &p.Name, &p.ParticleCount, &p.Easing, &p.RotationEasing,
		&p.HeartbeatAmplitude, &p.HeartbeatSpeed, &p.StarfieldRadius,
		&p.HeartScaleX, &p.HeartScaleY, &p.HeartScaleZ, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a preset by its ID.
func (r *PresetRepository) GetByID(id string) (*Preset, error) {
	row := r.db.QueryRow(`SELECT `+presetColumns+` FROM presets WHERE id = ?`, id)
	return scanPreset(row)
}

// GetByName retrieves a preset by its name.
func (r *PresetRepository) GetByName(name string) (*Preset, error) {
	row := r.db.QueryRow(`SELECT `+presetColumns+` FROM presets WHERE name = ?`, name)
	return scanPreset(row)
}

// List returns all presets ordered by name.
func (r *PresetRepository) List() ([]*Preset, error) {
	rows, err := r.db.Query(`SELECT ` + presetColumns + ` FROM presets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// Update rewrites an existing preset's tunables.
func (r *PresetRepository) Update(p *Preset) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE presets SET name = ?, particle_count = ?, easing = ?,
		 rotation_easing = ?, heartbeat_amplitude = ?, heartbeat_speed = ?,
		 starfield_radius = ?, heart_scale_x = ?, heart_scale_y = ?,
		 heart_scale_z = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.ParticleCount, p.Easing, p.RotationEasing,
		p.HeartbeatAmplitude, p.HeartbeatSpeed, p.StarfieldRadius,
		p.HeartScaleX, p.HeartScaleY, p.HeartScaleZ, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a preset by ID.
func (r *PresetRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
