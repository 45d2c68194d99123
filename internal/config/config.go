// internal/config/config.go
package config

type Config struct {
	Statusd StatusdConfig `yaml:"statusd"`
}

type StatusdConfig struct {
	Endpoints   EndpointsConfig   `yaml:"endpoints"`
	Timing      TimingConfig      `yaml:"timing"`
	Weather     WeatherConfig     `yaml:"weather"`
	Display     DisplayConfig     `yaml:"display"`
	LightSensor LightSensorConfig `yaml:"light_sensor"`
}

// ---- ENDPOINTS ----

// Endpoint URLs are usually secrets; STATUSD_TIME_URL / STATUSD_WEATHER_URL
// override whatever the file says.
type EndpointsConfig struct {
	TimeURL    string `yaml:"time_url"`
	WeatherURL string `yaml:"weather_url"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// ---- TIMING ----

type TimingConfig struct {
	TickMs           int `yaml:"tick_ms"`            // loop interval, also the clock refresh
	WeatherRefreshMs int `yaml:"weather_refresh_ms"` // min age before a weather refetch
	ResetPauseMs     int `yaml:"reset_pause_ms"`     // cooldown after any failed fetch
}

// ---- WEATHER ----

type WeatherConfig struct {
	MaxConsecutiveFailures uint   `yaml:"max_consecutive_failures"`
	DescriptionWidth       int    `yaml:"description_width"`
	TempUnit               string `yaml:"temp_unit"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Columns int          `yaml:"columns"`
	Rows    int          `yaml:"rows"`
	Sink    string       `yaml:"sink"` // "console" | "modbus"
	Modbus  ModbusConfig `yaml:"modbus"`
}

type ModbusConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// ---- LIGHT SENSOR ----

type LightSensorConfig struct {
	Enabled bool    `yaml:"enabled"`
	Bus     string  `yaml:"bus"` // i2creg name, "" = first bus
	Address uint16  `yaml:"address"`
	MinLux  float64 `yaml:"min_lux"`
	MaxLux  float64 `yaml:"max_lux"`
}

const (
	SinkConsole = "console"
	SinkModbus  = "modbus"
)

// Default returns a config with every tunable at its default.
func Default() *Config {
	return &Config{
		Statusd: StatusdConfig{
			Endpoints: EndpointsConfig{
				TimeoutMs: 10000,
			},
			Timing: TimingConfig{
				TickMs:           5000,
				WeatherRefreshMs: 30000,
				ResetPauseMs:     2000,
			},
			Weather: WeatherConfig{
				MaxConsecutiveFailures: 3,
				DescriptionWidth:       7,
				TempUnit:               "F",
			},
			Display: DisplayConfig{
				Columns: 20,
				Rows:    4,
				Sink:    SinkConsole,
				Modbus: ModbusConfig{
					UnitID:    1,
					TimeoutMs: 1000,
				},
			},
			LightSensor: LightSensorConfig{
				Address: 0x23,
				MinLux:  1,
				MaxLux:  50,
			},
		},
	}
}
