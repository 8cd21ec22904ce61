//go:build opencl

package main

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"kochsnowflake/koch"
	"kochsnowflake/raster"
)

// openCLRasterizer draws one segment per work item into a device-side copy of
// the frame. Overlapping segments race on shared pixels; either colour is fine
// for display.
type openCLRasterizer struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	segBuf     *cl.MemObject
	colorBuf   *cl.MemObject
	pixelBuf   *cl.MemObject
	width      int
	height     int
	segCap     int
	segData    []int32
	deviceName string
}

const rasterKernelSource = `__kernel void draw_segments(
    const int width,
    const int height,
    const int count,
    __global const int4* segs,
    __global const uchar4* colors,
    const int color_count,
    __global uchar4* pixels)
{
    int gid = get_global_id(0);
    if (gid >= count) {
        return;
    }
    int4 s = segs[gid];
    int x0 = s.x;
    int y0 = s.y;
    int x1 = s.z;
    int y1 = s.w;
    int dx = abs(x1 - x0);
    int sx = x0 < x1 ? 1 : -1;
    int dy = -abs(y1 - y0);
    int sy = y0 < y1 ? 1 : -1;
    int err = dx + dy;
    uchar4 c = colors[gid % color_count];
    for (;;) {
        if (x0 >= 0 && x0 < width && y0 >= 0 && y0 < height) {
            pixels[y0 * width + x0] = c;
        }
        if (x0 == x1 && y0 == y1) {
            break;
        }
        int e2 = 2 * err;
        if (e2 >= dy) {
            err += dy;
            x0 += sx;
        }
        if (e2 <= dx) {
            err += dx;
            y0 += sy;
        }
    }
}`

func newOpenCLRasterizer(width, height int, colors []color.RGBA) (*openCLRasterizer, error) {
	if len(colors) == 0 {
		return nil, errors.New("no segment colours")
	}
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	r := &openCLRasterizer{width: width, height: height, deviceName: device.Name()}
	fail := func(format string, err error) (*openCLRasterizer, error) {
		r.Close()
		return nil, fmt.Errorf(format, err)
	}

	if r.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fail("creating OpenCL context: %w", err)
	}
	if r.queue, err = r.context.CreateCommandQueue(device, 0); err != nil {
		return fail("creating OpenCL command queue: %w", err)
	}
	if r.program, err = r.context.CreateProgramWithSource([]string{rasterKernelSource}); err != nil {
		return fail("creating OpenCL program: %w", err)
	}
	if err := r.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fail("building OpenCL program: %w", errors.New(string(buildErr)))
		}
		return fail("building OpenCL program: %w", err)
	}
	if r.kernel, err = r.program.CreateKernel("draw_segments"); err != nil {
		return fail("creating OpenCL kernel: %w", err)
	}

	colorBytes := make([]byte, 4*len(colors))
	for i, c := range colors {
		colorBytes[4*i] = c.R
		colorBytes[4*i+1] = c.G
		colorBytes[4*i+2] = c.B
		colorBytes[4*i+3] = c.A
	}
	if r.colorBuf, err = r.context.CreateEmptyBuffer(cl.MemReadOnly, len(colorBytes)); err != nil {
		return fail("allocating colour buffer: %w", err)
	}
	if _, err := r.queue.EnqueueWriteBuffer(r.colorBuf, true, 0, len(colorBytes), unsafe.Pointer(&colorBytes[0]), nil); err != nil {
		return fail("writing colour buffer: %w", err)
	}
	if r.pixelBuf, err = r.context.CreateEmptyBuffer(cl.MemReadWrite, width*height*4); err != nil {
		return fail("allocating pixel buffer: %w", err)
	}
	if err := r.ensureSegmentCapacity(3); err != nil {
		return fail("allocating segment buffer: %w", err)
	}
	if err := r.kernel.SetArgs(
		int32(width),
		int32(height),
		int32(0),
		r.segBuf,
		r.colorBuf,
		int32(len(colors)),
		r.pixelBuf,
	); err != nil {
		return fail("setting kernel arguments: %w", err)
	}
	return r, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// ensureSegmentCapacity grows the segment buffer to hold n segments and
// rebinds it to the kernel.
func (r *openCLRasterizer) ensureSegmentCapacity(n int) error {
	if n <= r.segCap && r.segBuf != nil {
		return nil
	}
	capacity := max(n, 2*r.segCap)
	buf, err := r.context.CreateEmptyBuffer(cl.MemReadOnly, capacity*4*int(unsafe.Sizeof(int32(0))))
	if err != nil {
		return err
	}
	if r.segBuf != nil {
		r.segBuf.Release()
	}
	r.segBuf = buf
	r.segCap = capacity
	if r.kernel != nil {
		return r.kernel.SetArgBuffer(3, r.segBuf)
	}
	return nil
}

func (r *openCLRasterizer) Rasterize(segs []koch.Vector, frame *raster.Frame) error {
	if frame.Width != r.width || frame.Height != r.height {
		return fmt.Errorf("frame %dx%d does not match device buffers %dx%d", frame.Width, frame.Height, r.width, r.height)
	}
	frame.Clear(backgroundColor)
	if len(segs) == 0 {
		return nil
	}
	if err := r.ensureSegmentCapacity(len(segs)); err != nil {
		return fmt.Errorf("growing segment buffer: %w", err)
	}

	if cap(r.segData) < 4*len(segs) {
		r.segData = make([]int32, 4*len(segs))
	}
	r.segData = r.segData[:4*len(segs)]
	for i, s := range segs {
		r.segData[4*i] = int32(s.Start.X)
		r.segData[4*i+1] = int32(s.Start.Y)
		r.segData[4*i+2] = int32(s.End.X)
		r.segData[4*i+3] = int32(s.End.Y)
	}

	segBytes := len(r.segData) * int(unsafe.Sizeof(int32(0)))
	if _, err := r.queue.EnqueueWriteBuffer(r.segBuf, false, 0, segBytes, unsafe.Pointer(&r.segData[0]), nil); err != nil {
		return fmt.Errorf("writing segment buffer: %w", err)
	}
	if _, err := r.queue.EnqueueWriteBuffer(r.pixelBuf, false, 0, len(frame.Pix), unsafe.Pointer(&frame.Pix[0]), nil); err != nil {
		return fmt.Errorf("writing pixel buffer: %w", err)
	}
	if err := r.kernel.SetArgInt32(2, int32(len(segs))); err != nil {
		return fmt.Errorf("setting segment count: %w", err)
	}
	if _, err := r.queue.EnqueueNDRangeKernel(r.kernel, nil, []int{len(segs)}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := r.queue.EnqueueReadBuffer(r.pixelBuf, true, 0, len(frame.Pix), unsafe.Pointer(&frame.Pix[0]), nil); err != nil {
		return fmt.Errorf("reading pixel buffer: %w", err)
	}
	return nil
}

func (r *openCLRasterizer) Name() string { return "opencl" }

func (r *openCLRasterizer) DeviceName() string {
	return r.deviceName
}

func (r *openCLRasterizer) Close() {
	if r.segBuf != nil {
		r.segBuf.Release()
		r.segBuf = nil
	}
	if r.pixelBuf != nil {
		r.pixelBuf.Release()
		r.pixelBuf = nil
	}
	if r.colorBuf != nil {
		r.colorBuf.Release()
		r.colorBuf = nil
	}
	if r.kernel != nil {
		r.kernel.Release()
		r.kernel = nil
	}
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.context != nil {
		r.context.Release()
		r.context = nil
	}
}
