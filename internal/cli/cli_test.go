package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/molmod"
	"github.com/rmera/molmod/chemjson"
	"github.com/rmera/molmod/edit"
	"github.com/rmera/molmod/groups"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ethanol = "../../test/ethanol.xyz"

//run executes the root command with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func readXYZ(t *testing.T, name string) *chem.Molecule {
	t.Helper()
	mol, err := chem.XYZFileRead(name)
	require.NoError(t, err)
	return mol
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "molmod", cmd.Use)
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, n := range []string{"groups", "show", "modify", "serve"} {
		assert.True(t, names[n], n)
	}
	for _, f := range []string{"config", "log-level", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(f), f)
	}
	_, err := run(t, "--output", "yaml", "groups")
	assert.Error(t, err)
	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "groups")
	assert.Error(t, err)
}

func TestGroupsCommand(t *testing.T) {
	out, err := run(t, "groups")
	require.NoError(t, err)
	assert.Contains(t, out, "Methyl (-CH3)")
	assert.Contains(t, out, "Phosphorus-containing Groups")
	assert.Contains(t, out, "P O O O O")

	out, err = run(t, "--output", "json", "groups")
	require.NoError(t, err)
	var cats []groups.Category
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	assert.Len(t, cats, 6)
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, "show", ethanol)
	require.NoError(t, err)
	assert.Contains(t, out, "ethanol")
	assert.Contains(t, out, "C2H6O")
	assert.Contains(t, out, "46.068")
	assert.Contains(t, out, "-1.84200")

	out, err = run(t, "--output", "json", "show", ethanol)
	require.NoError(t, err)
	var jm chemjson.Molecule
	require.NoError(t, json.Unmarshal([]byte(out), &jm))
	require.Len(t, jm.Atoms, 9)
	assert.Equal(t, 9, jm.Atoms[8].Label)
	assert.Equal(t, "O", jm.Atoms[2].Symbol)
}

func TestShowJSONInput(t *testing.T) {
	dir := t.TempDir()
	water := filepath.Join(dir, "water.json")
	mol, err := chem.XYZRead(strings.NewReader("3\nwater\nO 0 0 0\nH 0.96 0 0\nH -0.24 0.93 0\n"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.Nil(t, chemjson.SendMolecule(mol, &buf))
	require.NoError(t, os.WriteFile(water, buf.Bytes(), 0o644))

	out, err := run(t, "show", water)
	require.NoError(t, err)
	assert.Contains(t, out, "H2O")
	assert.Contains(t, out, "-0.24000")

	_, err = run(t, "show", filepath.Join(dir, "missing.xyz"))
	assert.Error(t, err)
	_, err = run(t, "show", ethanol, ethanol)
	assert.Error(t, err)
}

func TestShowPlot(t *testing.T) {
	png := filepath.Join(t.TempDir(), "ethanol.png")
	_, err := run(t, "show", ethanol, "--plot", png, "--plane", "xy")
	require.NoError(t, err)
	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	_, err = run(t, "show", ethanol, "--plot", png, "--plane", "diagonal")
	assert.Error(t, err)
}

func TestModifyCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "new.xyz")
	stdout, err := run(t, "modify", ethanol, "--sub", "8:Fluoro", "--del", "9", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "8 atoms")
	mol := readXYZ(t, out)
	assert.Equal(t, []string{"C", "C", "O", "H", "H", "H", "H", "F"}, mol.Symbols())

	stdout, err = run(t, "--output", "json", "modify", ethanol, "--add", "3:Oxygen-containing Groups/Hydroxyl", "-o", out)
	require.NoError(t, err)
	var r modifyResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &r))
	assert.Equal(t, 11, r.Atoms)
	assert.Equal(t, "C2H7O2", r.Formula)
}

func TestModifyKeepsCommandLineOrder(t *testing.T) {
	out := filepath.Join(t.TempDir(), "new.xyz")
	_, err := run(t, "modify", ethanol, "--add", "1:Hydroxyl", "--sub", "1:Methyl", "-o", out)
	require.NoError(t, err)
	assert.Equal(t, 14, readXYZ(t, out).Len())

	_, err = run(t, "modify", ethanol, "--sub", "1:Methyl", "--add", "1:Hydroxyl", "-o", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 2: atom 1 was already removed")
}

func TestModifyOutputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"new.xyz.zst", "new.xyz.gz"} {
		out := filepath.Join(dir, name)
		_, err := run(t, "modify", ethanol, "--del", "9", "-o", out)
		require.NoError(t, err)
		assert.Equal(t, 8, readXYZ(t, out).Len(), name)
	}
	stdout, err := run(t, "modify", ethanol, "--del", "1", "-o", "-")
	require.NoError(t, err)
	mol, err := chem.XYZRead(strings.NewReader(stdout))
	require.NoError(t, err)
	assert.Equal(t, 8, mol.Len())
	assert.Equal(t, "ethanol", mol.Comment)
}

func TestModifyOpsFile(t *testing.T) {
	dir := t.TempDir()
	ops := filepath.Join(dir, "ops.json")
	require.NoError(t, os.WriteFile(ops, []byte(`[{"type":"deletion","atom":2},{"type":"addition","atom":9,"group":"Methyl"}]`), 0o644))
	out := filepath.Join(dir, "new.xyz")
	_, err := run(t, "modify", ethanol, "--ops", ops, "--del", "3", "-o", out)
	require.NoError(t, err)
	mol := readXYZ(t, out)
	assert.Equal(t, 9-2+4, mol.Len())
	assert.Equal(t, "C", mol.Symbols()[0])

	require.NoError(t, os.WriteFile(ops, []byte(`{"type":`), 0o644))
	_, err = run(t, "modify", ethanol, "--ops", ops, "-o", out)
	assert.Error(t, err)
}

func TestModifySequential(t *testing.T) {
	out := filepath.Join(t.TempDir(), "new.xyz")
	_, err := run(t, "modify", ethanol, "--sequential", "--del", "1", "--del", "1", "-o", out)
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "H", "H", "H", "H", "H", "H"}, readXYZ(t, out).Symbols())

	_, err = run(t, "modify", ethanol, "--del", "1", "--del", "1", "-o", out)
	assert.Error(t, err)
}

func TestModifyErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "new.xyz")
	_, err := run(t, "modify", ethanol, "--del", "20", "-o", out)
	require.Error(t, err)
	assert.Equal(t, "operation 1: there is no atom 20, the molecule has 9 atoms", err.Error())

	_, err = run(t, "modify", ethanol, "--sub", "1:Unobtainium", "-o", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown functional group")

	cases := [][]string{
		{"modify", ethanol, "-o", out},
		{"modify", ethanol, "--sub", "1", "-o", out},
		{"modify", ethanol, "--del", "one", "-o", out},
		{"modify", "--del", "1"},
	}
	for _, args := range cases {
		_, err := run(t, args...)
		assert.Error(t, err, "%v", args)
	}
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestParseOperation(t *testing.T) {
	cases := []struct {
		kind edit.Kind
		in   string
		want chemjson.Operation
	}{
		{edit.KindDeletion, "5", chemjson.Operation{Type: "deletion", Atom: 5}},
		{edit.KindSubstitution, "3:Methyl", chemjson.Operation{Type: "substitution", Atom: 3, Group: "Methyl"}},
		{edit.KindAddition, " 2 : Halogen Groups/Chloro ", chemjson.Operation{Type: "addition", Atom: 2, Category: "Halogen Groups", Group: "Chloro"}},
	}
	for _, c := range cases {
		got, err := parseOperation(c.kind, c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	for _, bad := range []string{"", "x:Methyl", "3:", "3"} {
		_, err := parseOperation(edit.KindAddition, bad)
		assert.Error(t, err, bad)
	}
}
