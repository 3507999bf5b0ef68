// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command pcmplugdemo loads a plug or surround configuration tree, binds
// its "slave"/"card" references to in-memory fakedev.Device endpoints,
// negotiates hw_params against a fixed client request, and runs one
// write cycle -- exercising the full plug/surround/convert/config stack
// end to end the way a teacher-style cmd/ binary wires a library's
// packages into a runnable tool.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/sndplug/pcm/config"
	"github.com/sndplug/pcm/fakedev"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

var (
	configPath   = pflag.StringP("config", "c", "", "path to a plug/surround YAML configuration file")
	surroundMode = pflag.Bool("surround", false, "load the config as a surround node instead of a plug")
	frames       = pflag.IntP("frames", "f", 1024, "frame count for the single demo write cycle")
)

func registry() *config.Registry {
	reg := config.NewRegistry()
	reg.RegisterSlave("fake", func(tree map[string]interface{}) (node.Node, error) {
		name, _ := tree["name"].(string)
		if name == "" {
			name = "demo"
		}
		return fakedev.New(name), nil
	})
	reg.RegisterCard("default", 0)
	reg.SetCardDeviceFactory(func(card, device, subdevice int) (node.Node, error) {
		return fakedev.New(fmt.Sprintf("card%d-dev%d-%d", card, device, subdevice)), nil
	})
	return reg
}

func main() {
	pflag.Parse()
	logger := log.New(os.Stderr)

	if *configPath == "" {
		logger.Fatal("missing required flag", "flag", "--config")
	}
	data, err := os.ReadFile(*configPath)
	if err != nil {
		logger.Fatal("reading config", "path", *configPath, "err", err)
	}
	tree, err := config.DecodeTree(data)
	if err != nil {
		logger.Fatal("decoding config", "err", err)
	}

	reg := registry()
	var target node.Node
	if *surroundMode {
		s, err := config.LoadSurround("demo", tree, reg)
		if err != nil {
			logger.Fatal("loading surround config", "err", err)
		}
		target = s
	} else {
		p, err := config.LoadPlug("demo", tree, reg)
		if err != nil {
			logger.Fatal("loading plug config", "err", err)
		}
		target = p
	}
	defer target.Close()

	channels := 2
	if *surroundMode {
		channels = 4
	}
	client := params.FromParams(params.Params{
		Access:   params.AccessInterleaved,
		Format:   params.FormatS16LE,
		Channels: channels,
		Rate:     48000,
	})
	if err := target.HwParams(&client); err != nil {
		logger.Fatal("hw_params", "err", err)
	}

	tuple, ok := client.Extract()
	if !ok {
		logger.Fatal("hw_params left the client block unresolved")
	}
	logger.Info("negotiated hw_params",
		"access", tuple.Access, "format", tuple.Format,
		"channels", tuple.Channels, "rate", tuple.Rate)

	bufs := make([][]float64, tuple.Channels)
	for c := range bufs {
		bufs[c] = make([]float64, *frames)
	}
	n, err := target.WriteN(bufs, *frames)
	if err != nil {
		logger.Error("write cycle failed", "err", err)
		os.Exit(1)
	}
	logger.Info("write cycle complete", "requested", *frames, "accepted", n)
}
