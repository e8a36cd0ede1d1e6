package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	RunSpeed         float64 `yaml:"run_speed"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`

	GroundAcceleration float64 `yaml:"ground_acceleration"`
	AirAcceleration    float64 `yaml:"air_acceleration"`
	GroundDeceleration float64 `yaml:"ground_deceleration"`
	AirDeceleration    float64 `yaml:"air_deceleration"`

	JumpSpeed                   float64 `yaml:"jump_speed"`
	FallAcceleration            float64 `yaml:"fall_acceleration"`
	MaxFallSpeed                float64 `yaml:"max_fall_speed"`
	JumpEndEarlyGravityModifier float64 `yaml:"jump_end_early_gravity_modifier"`

	CoyoteTime     float64 `yaml:"coyote_time"`
	JumpBufferTime float64 `yaml:"jump_buffer_time"`

	DashSpeed    float64 `yaml:"dash_speed"`
	DashDuration float64 `yaml:"dash_duration"`

	WallJumpForce    float64 `yaml:"wall_jump_force"`
	WallJumpDirX     float64 `yaml:"wall_jump_dir_x"`
	WallJumpDirY     float64 `yaml:"wall_jump_dir_y"`
	WallJumpLockTime float64 `yaml:"wall_jump_lock_time"`
	WallSlideSpeed   float64 `yaml:"wall_slide_speed"`

	WallProbeRange float64 `yaml:"wall_probe_range"`
	WallMask       uint32  `yaml:"wall_mask"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Width      float64   `yaml:"width"`
	Height     float64   `yaml:"height"`
	Color      YAMLColor `yaml:"color"`
	FacingLeft bool      `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type LineRenderComponentSpec struct {
	Width     float32   `yaml:"width"`
	Color     YAMLColor `yaml:"color"`
	AntiAlias bool      `yaml:"anti_alias"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Sensor        bool    `yaml:"sensor"`
	CustomGravity bool    `yaml:"custom_gravity"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type GravityComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type GravityZoneComponentSpec struct {
	Value float64 `yaml:"value"`
}

type GrappleComponentSpec struct {
	Mode         string  `yaml:"mode"`
	Range        float64 `yaml:"range"`
	MinLength    float64 `yaml:"min_length"`
	MaxLength    float64 `yaml:"max_length"`
	ReelStep     float64 `yaml:"reel_step"`
	ReelSpeed    float64 `yaml:"reel_speed"`
	AttractForce float64 `yaml:"attract_force"`
	FireOffsetX  float64 `yaml:"fire_offset_x"`
	FireOffsetY  float64 `yaml:"fire_offset_y"`
	Mask         uint32  `yaml:"mask"`
}

type RopeComponentSpec struct {
	Precision        int     `yaml:"precision"`
	StartWaveSize    float64 `yaml:"start_wave_size"`
	StraightenSpeed  float64 `yaml:"straighten_speed"`
	ProgressionSpeed float64 `yaml:"progression_speed"`
	Waves            float64 `yaml:"waves"`
}

type ChaserComponentSpec struct {
	Speed          float64 `yaml:"speed"`
	DetectionRange float64 `yaml:"detection_range"`
	Script         string  `yaml:"script"`
}
