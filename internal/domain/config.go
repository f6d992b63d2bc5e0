package domain

// Config represents the xsecs configuration loaded from xsecs.yaml.
type Config struct {
	Models   ModelsConfig
	Data     DataConfig
	Paths    PathsConfig
	Defaults DefaultsConfig
}

type ModelsConfig struct {
	SecondaryLeptons ModelName
	TotalInelastic   ModelName
}

// Model returns the configured model for ch.
func (m ModelsConfig) Model(ch Channel) ModelName {
	switch ch {
	case ChannelSecondaryLeptons:
		return m.SecondaryLeptons
	case ChannelTotalInelastic:
		return m.TotalInelastic
	}
	return ""
}

type DataConfig struct {
	Dir string

	// Data files for the HuangPohl2007 lepton tables, relative to Dir.
	HuangPohlPositrons string
	HuangPohlElectrons string
}

type PathsConfig struct {
	TablesDir string
	RunsDir   string
}

type DefaultsConfig struct {
	Lepton           PID
	ProjectileEnergy float64
	Grid             EnergyGrid
}

// DefaultConfig provides sane defaults if xsecs.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Models: ModelsConfig{
			SecondaryLeptons: ModelKamae2006,
			TotalInelastic:   ModelLetaw1983,
		},
		Data: DataConfig{
			Dir:                "data",
			HuangPohlPositrons: "huangpohl2007_positrons.txt",
			HuangPohlElectrons: "huangpohl2007_electrons.txt",
		},
		Paths: PathsConfig{
			TablesDir: "tables",
			RunsDir:   "runs",
		},
		Defaults: DefaultsConfig{
			Lepton:           Positron,
			ProjectileEnergy: 100,
			Grid:             DefaultGrid(),
		},
	}
}

// WorkspaceSpec describes where to create a workspace.
type WorkspaceSpec struct {
	Root string
}
