package audio

// MonoMixer downmixes a source to a single channel by averaging the
// input channels per frame. It is a fixed-output ChannelMixer with the
// output channel count pinned to one.
type MonoMixer struct {
	*ChannelMixer
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		ChannelMixer: NewChannelMixer(src, 1),
	}
}
