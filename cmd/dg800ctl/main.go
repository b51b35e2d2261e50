// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package main

import "github.com/gotmc/dg800/cmd/dg800ctl/cmd"

func main() {
	cmd.Execute()
}
