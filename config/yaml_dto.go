package config

// YAMLFile is the on-disk shape of application.yml.
type YAMLFile struct {
	Kochsnowflake YAMLKochsnowflake `yaml:"kochsnowflake"`
}

type YAMLKochsnowflake struct {
	View    YAMLView    `yaml:"view"`
	Control YAMLControl `yaml:"control"`
}

type YAMLView struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Width    *int   `yaml:"width"`
	Height   *int   `yaml:"height"`
	Padding  *int   `yaml:"padding"`
	Scale    *int   `yaml:"scale"`
}

type YAMLControl struct {
	ThreadSleepTime *int `yaml:"threadSleepTime"`
	MaxIterations   *int `yaml:"maxIterations"`
}
