// SPDX-License-Identifier: EPL-2.0

// Package player implements the playback element: a decoded local media
// file with transport controls (play, pause, seek) exposed to the processing
// chain as a pull-based audio.Source. Failures surface as *MediaError values
// classified by FaultCode.
package player
