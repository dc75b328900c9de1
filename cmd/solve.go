/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/helm2d/FEM2D"
	"github.com/notargets/helm2d/InputParameters"
	"github.com/notargets/helm2d/readfiles"
)

type Model2D struct {
	GridFile string
	ICFile   string
	GenMesh  int
	Graph    bool
	OutFile  string
	Profile  bool
	Verbose  bool
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Steady state solve, reads a grid file and outputs the wave field",
	Long:  `Steady state solve, reads a grid file and outputs the wave field`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		m2d := &Model2D{}
		if m2d.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			panic(err)
		}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		m2d.GenMesh, _ = cmd.Flags().GetInt("genMesh")
		m2d.Graph, _ = cmd.Flags().GetBool("graph")
		m2d.OutFile, _ = cmd.Flags().GetString("output")
		m2d.Profile, _ = cmd.Flags().GetBool("profile")
		m2d.Verbose, _ = cmd.Flags().GetBool("verbose")
		ip := processInput(m2d)
		RunSolve(m2d, ip)
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D) {
	var (
		err      error
		willExit bool
	)
	if len(m2d.GridFile) == 0 && m2d.GenMesh == 0 {
		err := fmt.Errorf("must supply a grid file (-F, --gridFile) in Gmsh 2.2 (.msh) format, or -G N for a generated grid")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if len(m2d.ICFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Periodic Sea"
Wavelength: 0.5
Periodic: true
Absorbing: false
Left: 0.
Right: 1.
Bottom: 0.
Top: 1.
SourceAmplitude: 1.
SourceVariance: 0.01
SourceX0: 0.5
SourceY0: 0.5
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(m2d.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in Gmsh 2.2 (.msh) format")
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Wavelength\n\t- Periodic / Absorbing")
	SolveCmd.Flags().IntP("genMesh", "G", 0, "generate a structured N x N grid over the extents instead of reading a file")
	SolveCmd.Flags().BoolP("graph", "g", false, "display the solved field")
	SolveCmd.Flags().StringP("output", "o", "", "write the solved field magnitude to a binary file")
	SolveCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the run")
	SolveCmd.Flags().BoolP("verbose", "v", false, "print mesh and system statistics while solving")
}

func RunSolve(m2d *Model2D, ip *InputParameters.InputParameters2D) {
	var (
		msh readfiles.Mesh
		err error
	)
	if m2d.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ip.Print()
	if len(m2d.GridFile) != 0 {
		if msh, err = readfiles.ReadGmsh2(m2d.GridFile, m2d.Verbose); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	} else {
		msh = readfiles.GenRectMesh(m2d.GenMesh, m2d.GenMesh,
			ip.Left, ip.Right, ip.Bottom, ip.Top, ip.Absorbing)
	}
	params := FEM2D.Parameters{
		WaveNumber: ip.WaveNumber(),
		Extents: FEM2D.Extents{
			Left: ip.Left, Right: ip.Right,
			Bottom: ip.Bottom, Top: ip.Top,
		},
		Periodic:  ip.Periodic,
		Absorbing: ip.Absorbing,
		Verbose:   m2d.Verbose,
	}
	src := FEM2D.NewGaussianPulse(ip.SourceAmplitude, ip.SourceVariance, ip.SourceX0, ip.SourceY0)
	h, err := FEM2D.NewHelmholtz2D(msh, params, src)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = h.Solve(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if len(m2d.OutFile) != 0 {
		if err = FEM2D.WriteFieldFile(h.UMesh, m2d.OutFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}
	if m2d.Graph {
		// blocks forever with the plot window up
		FEM2D.PlotField(msh, h.UMesh)
	}
}
