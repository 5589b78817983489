// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads cmdshelf settings.
//
// Settings come from an optional HCL file, then CMDSHELF_* environment
// variables, then defaults. The file may refer to `home`, `config_dir` and
// `env` and call a few string functions:
//
//	data_dir     = "${home}/.cmdshelf"
//	store_format = "yaml"
//	editor       = "code --wait"
//	shell        = env.SHELL
//	log_format   = lower("JSON")
package config
