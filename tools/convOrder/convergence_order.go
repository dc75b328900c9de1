package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a mesh refinement study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	for _, rs := range studies {
		fmt.Printf("Title = %s, Wavelength = %5.2f\n", rs.title, rs.wavelength)
		fmt.Printf("cells, fieldRMS, fieldMAX, observed order\n")
		for i := range rs.numCells {
			fmt.Printf("%d, %v, %v, %5.2f\n",
				rs.numCells[i], rs.fieldRMS[i], rs.fieldMAX[i], rs.Order(i))
		}
	}
}

type RefinementStudy struct {
	title              string
	wavelength         float64
	numCells           []int
	fieldRMS, fieldMAX []float64
}

func NewRefinementStudy(title string, wavelength float64) *RefinementStudy {
	return &RefinementStudy{
		title:      title,
		wavelength: wavelength,
	}
}

func (rs *RefinementStudy) Add(numCells int, fieldRMS, fieldMAX float64) {
	rs.numCells = append(rs.numCells, numCells)
	rs.fieldRMS = append(rs.fieldRMS, fieldRMS)
	rs.fieldMAX = append(rs.fieldMAX, fieldMAX)
}

// Order computes the observed convergence order from entry i-1 to i using the
// RMS field error. The cell size ratio of a 2D refinement is the square root
// of the cell count ratio.
func (rs *RefinementStudy) Order(i int) (p float64) {
	if i == 0 {
		return math.NaN()
	}
	hRatio := math.Sqrt(float64(rs.numCells[i]) / float64(rs.numCells[i-1]))
	p = math.Log(rs.fieldRMS[i-1]/rs.fieldRMS[i]) / math.Log(hRatio)
	return
}

func readCSV(csvFile string) (studies map[string]*RefinementStudy) {
	var (
		records            [][]string
		err                error
		f                  *os.File
		ok                 bool
		rs                 *RefinementStudy
		wavelength         float64
		fieldRMS, fieldMAX float64
	)
	studies = make(map[string]*RefinementStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title, ncellstxt, wltxt := rec[0], rec[1], rec[2]
		ncells, _ := strconv.Atoi(ncellstxt)
		_, _ = fmt.Sscanf(wltxt, "%f", &wavelength)
		combTitle := title + wltxt
		if rs, ok = studies[combTitle]; !ok {
			rs = NewRefinementStudy(title, wavelength)
			studies[combTitle] = rs
		}
		_, _ = fmt.Sscanf(rec[3], "%f", &fieldRMS)
		_, _ = fmt.Sscanf(rec[4], "%f", &fieldMAX)
		rs.Add(ncells, fieldRMS, fieldMAX)
	}
	return
}
