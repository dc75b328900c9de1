package InputParameters

import (
	"fmt"
	"math"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title           string  `yaml:"Title"`
	Wavelength      float64 `yaml:"Wavelength"`
	Periodic        bool    `yaml:"Periodic"`
	Absorbing       bool    `yaml:"Absorbing"`
	Left            float64 `yaml:"Left"`
	Right           float64 `yaml:"Right"`
	Bottom          float64 `yaml:"Bottom"`
	Top             float64 `yaml:"Top"`
	SourceAmplitude float64 `yaml:"SourceAmplitude"`
	SourceVariance  float64 `yaml:"SourceVariance"`
	SourceX0        float64 `yaml:"SourceX0"`
	SourceY0        float64 `yaml:"SourceY0"`
}

func (ip *InputParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// WaveNumber is k = 2*pi / wavelength
func (ip *InputParameters2D) WaveNumber() float64 {
	if ip.Wavelength == 0 {
		return 0
	}
	return 2. * math.Pi / ip.Wavelength
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= Wavelength (k = %8.5f)\n", ip.Wavelength, ip.WaveNumber())
	fmt.Printf("[%v]\t\t\t= Periodic\n", ip.Periodic)
	fmt.Printf("[%v]\t\t\t= Absorbing\n", ip.Absorbing)
	fmt.Printf("X: [%8.5f, %8.5f], Y: [%8.5f, %8.5f]\t= Extents\n",
		ip.Left, ip.Right, ip.Bottom, ip.Top)
	fmt.Printf("a = %8.5f, sigma2 = %8.5f, center = (%8.5f, %8.5f)\t= Source\n",
		ip.SourceAmplitude, ip.SourceVariance, ip.SourceX0, ip.SourceY0)
}
