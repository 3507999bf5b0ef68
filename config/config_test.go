// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sndplug/pcm/fakedev"
	"github.com/sndplug/pcm/node"
)

func fakeRegistry() *Registry {
	r := NewRegistry()
	r.RegisterSlave("fake", func(tree map[string]interface{}) (node.Node, error) {
		name, _ := tree["name"].(string)
		if name == "" {
			name = "fake"
		}
		return fakedev.New(name), nil
	})
	r.RegisterCard("default", 0)
	r.SetCardDeviceFactory(func(card, device, subdevice int) (node.Node, error) {
		return fakedev.New("card"), nil
	})
	return r
}

func TestLoadPlugResolvesSlaveAndTTable(t *testing.T) {
	reg := fakeRegistry()
	doc := []byte(`
slave:
  type: fake
  name: dev0
ttable:
  cused: 2
  sused: 4
  matrix:
    - [0.5, 0.5, 0, 0]
    - [0, 0, 0.5, 0.5]
`)
	tree, err := DecodeTree(doc)
	require.NoError(t, err)

	p, err := LoadPlug("p", tree, reg)
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestLoadPlugRejectsUnknownKey(t *testing.T) {
	reg := fakeRegistry()
	tree, err := DecodeTree([]byte("slave:\n  type: fake\nbogus: 1\n"))
	require.NoError(t, err)
	_, err = LoadPlug("p", tree, reg)
	require.Error(t, err)
}

func TestLoadPlugRequiresSlave(t *testing.T) {
	reg := fakeRegistry()
	tree, err := DecodeTree([]byte("ttable:\n  cused: 1\n  sused: 1\n  matrix: [[1]]\n"))
	require.NoError(t, err)
	_, err = LoadPlug("p", tree, reg)
	require.Error(t, err)
}

func TestLoadTTableRejectsOversizeDimensions(t *testing.T) {
	_, err := LoadTTable(map[string]interface{}{
		"cused": MaxChannels + 1,
		"sused": 1,
		"matrix": []interface{}{
			[]interface{}{1.0},
		},
	})
	require.Error(t, err)
}

func TestLoadSurroundDefaultsTo40(t *testing.T) {
	reg := fakeRegistry()
	tree, err := DecodeTree([]byte("card: default\n"))
	require.NoError(t, err)
	s, err := LoadSurround("s", tree, reg)
	require.NoError(t, err)
	require.NotNil(t, s)
}

// TestLoadSurroundRecognizesTypeKey is the config-layer fix for §9's Open
// Question: "type" must resolve 5.1 configuration, not fall through to
// the unknown-key branch.
func TestLoadSurroundRecognizesTypeKey(t *testing.T) {
	reg := fakeRegistry()
	tree, err := DecodeTree([]byte("card: 0\ntype: \"5.1\"\n"))
	require.NoError(t, err)
	_, err = LoadSurround("s", tree, reg)
	require.NoError(t, err)
}

func TestLoadSurroundRejectsUnknownType(t *testing.T) {
	reg := fakeRegistry()
	tree, err := DecodeTree([]byte("card: 0\ntype: \"7.1\"\n"))
	require.NoError(t, err)
	_, err = LoadSurround("s", tree, reg)
	require.Error(t, err)
}

func TestLoadSurroundRejectsUnknownCardName(t *testing.T) {
	reg := fakeRegistry()
	tree, err := DecodeTree([]byte("card: missing\n"))
	require.NoError(t, err)
	_, err = LoadSurround("s", tree, reg)
	require.Error(t, err)
}
