// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext returns the variables and functions available to the configuration file.
func evalContext(configDir string) (*hcl.EvalContext, error) {
	home, err := userHomeDir()
	if err != nil {
		return nil, err
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":       cty.StringVal(home),
			"config_dir": cty.StringVal(configDir),
			"env":        envObject(os.Environ()),
		},
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"format":    stdlib.FormatFunc,
			"coalesce":  stdlib.CoalesceFunc,
		},
	}, nil
}

// envObject converts KEY=value pairs to an object value.
func envObject(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}

	return cty.ObjectVal(vars)
}
