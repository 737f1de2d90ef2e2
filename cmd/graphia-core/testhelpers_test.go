package main

import (
	"github.com/graphia-app/graphia-sub005/internal/config"
	"github.com/graphia-app/graphia-sub005/transform"
)

func testConfigDefaults() config.Defaults {
	return config.Defaults{}
}

func sampleTransformConfig() transform.TransformConfig {
	return transform.TransformConfig{
		Action: transform.ActionFilterNode,
		Parameters: map[string]transform.Param{
			"threshold": transform.NumberParam(0.5),
		},
		Flags: map[transform.ConfigFlag]bool{
			transform.Repeating: true,
		},
	}
}
