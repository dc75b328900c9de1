package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/helm2d/types"
	"github.com/notargets/helm2d/utils"
)

// From here: https://gmsh.info/doc/texinfo/gmsh.html#MSH-file-format
type GmshElementType uint8

const (
	ELType_Line     GmshElementType = 1
	ELType_Triangle GmshElementType = 2
	ELType_Point    GmshElementType = 15
)

// MeshLoadError reports a missing or malformed grid file, or a required
// tagged group that the file does not carry
type MeshLoadError struct {
	File   string
	Detail string
}

func (e *MeshLoadError) Error() string {
	return fmt.Sprintf("mesh load failed for %s: %s", e.File, e.Detail)
}

// Group is one tagged sub-mesh: an ordered element list of a single shape,
// vertex indices zero-based into the mesh vertex vectors
type Group struct {
	Kind types.ElementKind
	K    int          // element count
	EToV utils.Matrix // K x Kind.NumVerts()
}

// Mesh is the immutable result of a grid read
type Mesh struct {
	Nv         int
	VX, VY, VZ utils.Vector
	Groups     map[types.MeshTAG]Group
}

// Group returns the tagged sub-mesh or a MeshLoadError when absent
func (msh Mesh) Group(tag types.MeshTAG) (g Group, err error) {
	var (
		ok bool
	)
	if g, ok = msh.Groups[tag]; !ok {
		err = &MeshLoadError{Detail: fmt.Sprintf("required tagged group [%s] not present in grid", tag)}
	}
	return
}

// ReadGmsh2 reads a Gmsh MSH 2.2 ASCII grid with named physical groups.
// Line elements form the 1D boundary groups, triangles the 2D region groups.
func ReadGmsh2(filename string, verbose bool) (msh Mesh, err error) {
	var (
		file   *os.File
		reader *bufio.Reader
	)
	defer func() {
		if r := recover(); r != nil {
			err = &MeshLoadError{File: filename, Detail: fmt.Sprint(r)}
		}
	}()
	if verbose {
		fmt.Printf("Reading Gmsh 2.2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = &MeshLoadError{File: filename, Detail: err.Error()}
		return
	}
	defer file.Close()
	reader = bufio.NewReader(file)

	seekSection(reader, "$MeshFormat")
	version := getLine(reader)
	if !strings.HasPrefix(version, "2.2") {
		panic(fmt.Errorf("unsupported MSH version [%s], need 2.2 ASCII", version))
	}
	skipToEnd(reader, "$EndMeshFormat")

	seekSection(reader, "$PhysicalNames")
	names := readPhysicalNames(reader)
	skipToEnd(reader, "$EndPhysicalNames")

	seekSection(reader, "$Nodes")
	msh.Nv, msh.VX, msh.VY, msh.VZ = readNodes(reader)
	skipToEnd(reader, "$EndNodes")

	seekSection(reader, "$Elements")
	msh.Groups = readElements(reader, names)
	skipToEnd(reader, "$EndElements")

	if verbose {
		fmt.Printf("Nv = %d, %d tagged groups\n", msh.Nv, len(msh.Groups))
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
			msh.VX.Min(), msh.VX.Max(), msh.VY.Min(), msh.VY.Max())
		for tag, g := range msh.Groups {
			fmt.Printf("group [%s], %d elements of %d vertices\n", tag, g.K, g.Kind.NumVerts())
		}
	}
	return
}

func readPhysicalNames(reader *bufio.Reader) (names map[int]types.MeshTAG) {
	var (
		n, dim, id int
		name       string
		err        error
	)
	N := readCount(reader)
	names = make(map[int]types.MeshTAG, N)
	for i := 0; i < N; i++ {
		line := getLine(reader)
		if n, err = fmt.Sscanf(line, "%d %d %q", &dim, &id, &name); err != nil || n != 3 {
			if err == nil {
				err = fmt.Errorf("read %d of 3 fields of physical name, line: %s", n, line)
			}
			panic(err)
		}
		names[id] = types.NewMeshTAG(name)
	}
	return
}

func readNodes(reader *bufio.Reader) (Nv int, VX, VY, VZ utils.Vector) {
	var (
		n, ind  int
		x, y, z float64
		err     error
	)
	Nv = readCount(reader)
	VX, VY, VZ = utils.NewVector(Nv), utils.NewVector(Nv), utils.NewVector(Nv)
	vx, vy, vz := VX.Data(), VY.Data(), VZ.Data()
	for i := 0; i < Nv; i++ {
		line := getLine(reader)
		if n, err = fmt.Sscanf(line, "%d %f %f %f", &ind, &x, &y, &z); err != nil || n != 4 {
			if err == nil {
				err = fmt.Errorf("read %d of 4 node fields, line: %s", n, line)
			}
			panic(err)
		}
		if ind < 1 || ind > Nv {
			panic(fmt.Errorf("node index %d out of range 1:%d", ind, Nv))
		}
		vx[ind-1], vy[ind-1], vz[ind-1] = x, y, z
	}
	return
}

type rawElement struct {
	kind  types.ElementKind
	verts []int
}

func readElements(reader *bufio.Reader, names map[int]types.MeshTAG) (groups map[types.MeshTAG]Group) {
	var (
		raw = make(map[types.MeshTAG][]rawElement)
	)
	Ne := readCount(reader)
	for i := 0; i < Ne; i++ {
		line := getLine(reader)
		fields := strings.Fields(line)
		if len(fields) < 3 {
			panic(fmt.Errorf("short element line: %s", line))
		}
		elType := GmshElementType(atoi(fields[1]))
		nTags := atoi(fields[2])
		if len(fields) < 3+nTags {
			panic(fmt.Errorf("element line missing tags: %s", line))
		}
		var kind types.ElementKind
		switch elType {
		case ELType_Line:
			kind = types.KindSegment
		case ELType_Triangle:
			kind = types.KindTriangle
		case ELType_Point:
			continue
		default:
			panic(fmt.Errorf("unable to deal with element type %d, need lines and triangles", elType))
		}
		verts := fields[3+nTags:]
		if len(verts) != kind.NumVerts() {
			panic(fmt.Errorf("element has %d vertices, need %d, line: %s", len(verts), kind.NumVerts(), line))
		}
		if nTags < 1 {
			panic(fmt.Errorf("element carries no physical tag, line: %s", line))
		}
		tag, ok := names[atoi(fields[3])]
		if !ok {
			panic(fmt.Errorf("element references unnamed physical group %s, line: %s", fields[3], line))
		}
		el := rawElement{kind: kind, verts: make([]int, kind.NumVerts())}
		for j := range el.verts {
			el.verts[j] = atoi(verts[j]) - 1 // to zero-based
		}
		raw[tag] = append(raw[tag], el)
	}

	groups = make(map[types.MeshTAG]Group, len(raw))
	for tag, els := range raw {
		kind := els[0].kind
		EToV := utils.NewMatrix(len(els), kind.NumVerts())
		for k, el := range els {
			if el.kind != kind {
				panic(fmt.Errorf("mixed element kinds in group [%s]", tag))
			}
			for j, v := range el.verts {
				EToV.Set(k, j, float64(v))
			}
		}
		groups[tag] = Group{Kind: kind, K: len(els), EToV: EToV}
	}
	return
}

func atoi(s string) (n int) {
	var (
		err error
	)
	if _, err = fmt.Sscanf(s, "%d", &n); err != nil {
		panic(fmt.Errorf("unable to parse integer from [%s]", s))
	}
	return
}

func readCount(reader *bufio.Reader) (num int) {
	var (
		err error
	)
	line := getLine(reader)
	if _, err = fmt.Sscanf(line, "%d", &num); err != nil {
		panic(fmt.Errorf("unable to read count from line: [%s]", line))
	}
	return
}

func seekSection(reader *bufio.Reader, header string) {
	for {
		line := getLine(reader)
		if strings.TrimSpace(line) == header {
			return
		}
	}
}

func skipToEnd(reader *bufio.Reader, footer string) {
	seekSection(reader, footer)
}

func getLine(reader *bufio.Reader) (line string) {
	var (
		err error
	)
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) != 0 {
			return
		}
		if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		panic(err)
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
